package imagepkg

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/youruser/subhasayah/internal/exif"
)

// ErrDecode is returned when the photo bytes cannot be decoded.
var ErrDecode = errors.New("decode image")

// ErrTooLarge is returned for photos above MaxPixels.
var ErrTooLarge = errors.New("image too large")

// MaxPixels caps width*height of a photo, checked from the header before
// any pixels are allocated.
const MaxPixels = 50_000_000

// Decode decodes buf without applying any EXIF orientation; orientation is
// applied exactly once, by Normalize.
func Decode(buf []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, cfg.Width, cfg.Height, MaxPixels)
	}
	img, err := imaging.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// Normalized is a square, display-oriented photo ready for composition.
type Normalized struct {
	Image       *image.NRGBA
	Orientation exif.Orientation
	// source dimensions before orientation and crop
	SourceWidth  int
	SourceHeight int
}

// Normalize reads the orientation from buf, decodes it, orients the pixels
// and crops to a centered square.
func Normalize(buf []byte) (*Normalized, error) {
	o := exif.ReadOrientation(buf)
	img, err := Decode(buf)
	if err != nil {
		return nil, err
	}
	oriented := ApplyOrientation(img, o)
	square, err := CropToSquare(oriented)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &Normalized{
		Image:        square,
		Orientation:  o,
		SourceWidth:  b.Dx(),
		SourceHeight: b.Dy(),
	}, nil
}
