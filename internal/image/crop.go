package imagepkg

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrInvalidImage is returned for images with no pixels.
var ErrInvalidImage = errors.New("invalid image")

// CropToSquare copies the largest centered square out of img. The result
// never aliases img, even when img is already square.
func CropToSquare(img image.Image) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidImage, w, h)
	}
	size := min(w, h)
	x0 := b.Min.X + (w-size)/2
	y0 := b.Min.Y + (h-size)/2
	return imaging.Crop(img, image.Rect(x0, y0, x0+size, y0+size)), nil
}
