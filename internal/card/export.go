package card

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	imagepkg "github.com/youruser/subhasayah/internal/image"
)

// ErrEncode marks a batch slot whose surface failed to encode.
var ErrEncode = errors.New("encode card")

// Encoder writes img to w.
type Encoder func(w io.Writer, img image.Image) error

// PNGEncoder encodes as PNG.
func PNGEncoder(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// Item is one exported card.
type Item struct {
	Index int
	Name  string
	Data  []byte
}

// Failure records why a slot is missing from a batch.
type Failure struct {
	Index int
	Err   error
}

func (f Failure) Error() string { return fmt.Sprintf("card %d: %v", f.Index, f.Err) }
func (f Failure) Unwrap() error { return f.Err }

// Batch holds the cards that were produced, in index order, and the slots
// that were skipped.
type Batch struct {
	Items    []Item
	Skipped  int
	Failures []Failure
}

// FileName is the download name for card index (1-based).
func FileName(app string, year, index int) string {
	return fmt.Sprintf("%s-%d-%d.png", app, year, index)
}

// Exporter renders batches of cards at export resolution.
type Exporter struct {
	AppName string
	Year    int
	// Workers bounds concurrent renders; values below 2 render sequentially.
	Workers int
	Fonts   imagepkg.FaceSource
	Encode  Encoder
	Logger  *zap.Logger
}

type slot struct {
	item Item
	err  error
	done bool
}

// Export renders count cards of sizePx x sizePx. A slot that fails to
// compose or encode is left out and reported; the other slots still run.
// Once ctx is done no further slots are started.
func (e *Exporter) Export(ctx context.Context, style imagepkg.Style, photo image.Image, count, sizePx int) Batch {
	if count < 1 {
		return Batch{}
	}
	log := e.Logger
	if log == nil {
		log = zap.NewNop()
	}

	slots := make([]slot, count)
	var g errgroup.Group
	g.SetLimit(max(e.Workers, 1))
	for i := 1; i <= count; i++ {
		if ctx.Err() != nil {
			break
		}
		idx := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				slots[idx-1] = slot{err: err}
				return nil
			}
			item, err := e.render(style, photo, idx, sizePx)
			slots[idx-1] = slot{item: item, err: err, done: err == nil}
			return nil
		})
	}
	_ = g.Wait()

	var batch Batch
	for i, s := range slots {
		if s.done {
			batch.Items = append(batch.Items, s.item)
			continue
		}
		err := s.err
		if err == nil {
			err = ctx.Err()
		}
		batch.Skipped++
		batch.Failures = append(batch.Failures, Failure{Index: i + 1, Err: err})
		log.Warn("card skipped", zap.Int("index", i+1), zap.Error(err))
	}
	log.Info("batch exported",
		zap.Int("requested", count),
		zap.Int("exported", len(batch.Items)),
		zap.Int("skipped", batch.Skipped),
		zap.Int("size", sizePx),
	)
	return batch
}

func (e *Exporter) render(style imagepkg.Style, photo image.Image, index, sizePx int) (Item, error) {
	surface := imagepkg.NewSurface(sizePx, sizePx)
	if err := imagepkg.Compose(surface, style, photo, e.Fonts); err != nil {
		return Item{}, fmt.Errorf("compose: %w", err)
	}
	encode := e.Encode
	if encode == nil {
		encode = PNGEncoder
	}
	var buf bytes.Buffer
	if err := encode(&buf, surface); err != nil {
		return Item{}, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return Item{Index: index, Name: FileName(e.AppName, e.Year, index), Data: buf.Bytes()}, nil
}

// WriteZip writes every item of b into a zip archive on w.
func (b Batch) WriteZip(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, it := range b.Items {
		// PNG is already compressed
		f, err := zw.CreateHeader(&zip.FileHeader{Name: it.Name, Method: zip.Store})
		if err != nil {
			return fmt.Errorf("zip %s: %w", it.Name, err)
		}
		if _, err := f.Write(it.Data); err != nil {
			return fmt.Errorf("zip %s: %w", it.Name, err)
		}
	}
	return zw.Close()
}
