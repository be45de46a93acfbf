package imagepkg

import (
	"image"
	"image/color"
	"testing"

	"github.com/youruser/subhasayah/internal/exif"
)

// gradient gives every pixel a unique color derived from its position.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	return img
}

func TestApplyOrientation_PixelMapping(t *testing.T) {
	const w, h = 5, 3
	src := gradient(w, h)

	tests := []struct {
		code    exif.Orientation
		swapped bool
		// from maps an output pixel to the source pixel it must hold
		from func(x, y int) (int, int)
	}{
		{exif.OrientationNormal, false, func(x, y int) (int, int) { return x, y }},
		{exif.OrientationFlipH, false, func(x, y int) (int, int) { return w - 1 - x, y }},
		{exif.OrientationRotate180, false, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }},
		{exif.OrientationFlipV, false, func(x, y int) (int, int) { return x, h - 1 - y }},
		{exif.OrientationTranspose, true, func(x, y int) (int, int) { return y, x }},
		{exif.OrientationRotate90CW, true, func(x, y int) (int, int) { return y, h - 1 - x }},
		{exif.OrientationTransverse, true, func(x, y int) (int, int) { return w - 1 - y, h - 1 - x }},
		{exif.OrientationRotate90CCW, true, func(x, y int) (int, int) { return w - 1 - y, x }},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			out := ApplyOrientation(src, tt.code)
			ow, oh := out.Bounds().Dx(), out.Bounds().Dy()
			wantW, wantH := w, h
			if tt.swapped {
				wantW, wantH = h, w
			}
			if ow != wantW || oh != wantH {
				t.Fatalf("size = %dx%d, want %dx%d", ow, oh, wantW, wantH)
			}
			for y := 0; y < oh; y++ {
				for x := 0; x < ow; x++ {
					sx, sy := tt.from(x, y)
					if got, want := out.NRGBAAt(x, y), src.NRGBAAt(sx, sy); got != want {
						t.Fatalf("pixel (%d,%d) = %v, want src(%d,%d) = %v", x, y, got, sx, sy, want)
					}
				}
			}
		})
	}
}

func TestApplyOrientation_RoundTrip(t *testing.T) {
	src := gradient(7, 4)
	for code := exif.Orientation(1); code <= 8; code++ {
		back := ApplyOrientation(ApplyOrientation(src, code), Inverse(code))
		if back.Bounds() != src.Bounds() {
			t.Fatalf("code %d: bounds %v, want %v", code, back.Bounds(), src.Bounds())
		}
		for i := range src.Pix {
			if back.Pix[i] != src.Pix[i] {
				t.Fatalf("code %d: pixel data differs at byte %d", code, i)
			}
		}
	}
}

func TestApplyOrientation_NeverAliases(t *testing.T) {
	src := gradient(3, 3)
	out := ApplyOrientation(src, exif.OrientationNormal)
	out.Pix[0] = 255
	if src.Pix[0] == 255 {
		t.Fatal("orientation 1 returned an alias of the input")
	}
}

func TestApplyOrientation_InvalidCodeIsIdentity(t *testing.T) {
	src := gradient(4, 2)
	out := ApplyOrientation(src, exif.Orientation(42))
	if out.Bounds() != src.Bounds() || out.NRGBAAt(3, 1) != src.NRGBAAt(3, 1) {
		t.Fatal("invalid code should behave as identity")
	}
}

func TestInverse(t *testing.T) {
	want := map[exif.Orientation]exif.Orientation{1: 1, 2: 2, 3: 3, 4: 4, 5: 5, 6: 8, 7: 7, 8: 6, 0: 1, 9: 1}
	for in, out := range want {
		if got := Inverse(in); got != out {
			t.Errorf("Inverse(%d) = %d, want %d", in, got, out)
		}
	}
}
