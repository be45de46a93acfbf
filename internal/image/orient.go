package imagepkg

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/youruser/subhasayah/internal/exif"
)

// ApplyOrientation redraws img so that its pixels are in display order for
// the given EXIF orientation. The result is always a new image; codes 5-8
// swap width and height. Unknown codes are treated as 1.
func ApplyOrientation(img image.Image, o exif.Orientation) *image.NRGBA {
	switch o {
	case exif.OrientationFlipH:
		return imaging.FlipH(img)
	case exif.OrientationRotate180:
		return imaging.Rotate180(img)
	case exif.OrientationFlipV:
		return imaging.FlipV(img)
	case exif.OrientationTranspose:
		return imaging.Transpose(img)
	case exif.OrientationRotate90CW:
		// imaging rotates counter-clockwise
		return imaging.Rotate270(img)
	case exif.OrientationTransverse:
		return imaging.Transverse(img)
	case exif.OrientationRotate90CCW:
		return imaging.Rotate90(img)
	default:
		return imaging.Clone(img)
	}
}

// Inverse returns the code that undoes o.
func Inverse(o exif.Orientation) exif.Orientation {
	switch o {
	case exif.OrientationRotate90CW:
		return exif.OrientationRotate90CCW
	case exif.OrientationRotate90CCW:
		return exif.OrientationRotate90CW
	}
	if !o.Valid() {
		return exif.OrientationNormal
	}
	return o
}
