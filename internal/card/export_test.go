package card

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/youruser/subhasayah/internal/fonts"
	imagepkg "github.com/youruser/subhasayah/internal/image"
)

var testFonts = fonts.NewRegistry(nil)

func testStyle() imagepkg.Style {
	theme := ThemeByName("blue")
	return imagepkg.Style{
		Background:   theme.Background,
		Foreground:   theme.Foreground,
		Title:        DefaultTitle(2026),
		Body:         "Happy New Year 2026",
		FontFamily:   `"Noto Sans", sans-serif`,
		FontSizePx:   32,
		CanvasSizePx: 540,
	}
}

func newExporter() *Exporter {
	return &Exporter{AppName: "subhasayah", Year: 2026, Fonts: testFonts}
}

func TestExport_ProducesIndexedPNGs(t *testing.T) {
	batch := newExporter().Export(context.Background(), testStyle(), nil, 3, 108)
	if len(batch.Items) != 3 || batch.Skipped != 0 {
		t.Fatalf("items=%d skipped=%d", len(batch.Items), batch.Skipped)
	}
	for i, it := range batch.Items {
		if it.Index != i+1 {
			t.Errorf("item %d index = %d", i, it.Index)
		}
		if want := FileName("subhasayah", 2026, i+1); it.Name != want {
			t.Errorf("item %d name = %q, want %q", i, it.Name, want)
		}
		img, err := png.Decode(bytes.NewReader(it.Data))
		if err != nil {
			t.Fatalf("item %d: %v", i, err)
		}
		if img.Bounds() != image.Rect(0, 0, 108, 108) {
			t.Errorf("item %d bounds = %v", i, img.Bounds())
		}
	}
	if batch.Items[2].Name != "subhasayah-2026-3.png" {
		t.Fatalf("name = %q", batch.Items[2].Name)
	}
}

func TestExport_EmptyForNonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -4} {
		batch := newExporter().Export(context.Background(), testStyle(), nil, n, 100)
		if len(batch.Items) != 0 || batch.Skipped != 0 {
			t.Fatalf("count %d: %+v", n, batch)
		}
	}
}

func TestExport_EncodeFailureSkipsSlotOnly(t *testing.T) {
	var calls atomic.Int32
	core, logs := observer.New(zap.WarnLevel)
	e := newExporter()
	e.Logger = zap.New(core)
	e.Encode = func(w io.Writer, img image.Image) error {
		if calls.Add(1) == 2 {
			return errors.New("disk full")
		}
		return PNGEncoder(w, img)
	}

	batch := e.Export(context.Background(), testStyle(), nil, 3, 64)
	if len(batch.Items) != 2 || batch.Skipped != 1 {
		t.Fatalf("items=%d skipped=%d", len(batch.Items), batch.Skipped)
	}
	if batch.Items[0].Index != 1 || batch.Items[1].Index != 3 {
		t.Fatalf("indices = %d, %d", batch.Items[0].Index, batch.Items[1].Index)
	}
	f := batch.Failures[0]
	if f.Index != 2 || !errors.Is(f, ErrEncode) {
		t.Fatalf("failure = %v", f)
	}
	if logs.FilterMessage("card skipped").Len() != 1 {
		t.Fatal("expected the skipped slot to be logged")
	}
}

func TestExport_ConcurrentMatchesSequential(t *testing.T) {
	photo := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := range photo.Pix {
		photo.Pix[i] = uint8(i)
	}
	seq := newExporter().Export(context.Background(), testStyle(), photo, 4, 96)

	par := newExporter()
	par.Workers = 4
	got := par.Export(context.Background(), testStyle(), photo, 4, 96)

	if len(got.Items) != 4 {
		t.Fatalf("items = %d", len(got.Items))
	}
	for i := range seq.Items {
		if got.Items[i].Index != seq.Items[i].Index || !bytes.Equal(got.Items[i].Data, seq.Items[i].Data) {
			t.Fatalf("item %d differs between sequential and concurrent export", i)
		}
	}
}

func TestExport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	batch := newExporter().Export(ctx, testStyle(), nil, 3, 64)
	if len(batch.Items) != 0 || batch.Skipped != 3 {
		t.Fatalf("items=%d skipped=%d", len(batch.Items), batch.Skipped)
	}
	if !errors.Is(batch.Failures[0], context.Canceled) {
		t.Fatalf("failure = %v", batch.Failures[0])
	}
}

func TestExport_InvalidSizeIsReported(t *testing.T) {
	batch := newExporter().Export(context.Background(), testStyle(), nil, 2, 0)
	if batch.Skipped != 2 || !errors.Is(batch.Failures[1], imagepkg.ErrInvalidImage) {
		t.Fatalf("batch = %+v", batch)
	}
}

func TestBatch_WriteZip(t *testing.T) {
	batch := newExporter().Export(context.Background(), testStyle(), nil, 2, 48)
	var buf bytes.Buffer
	if err := batch.WriteZip(&buf); err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != 2 || zr.File[0].Name != "subhasayah-2026-1.png" || zr.File[1].Name != "subhasayah-2026-2.png" {
		t.Fatalf("zip entries = %v", zr.File)
	}
}
