package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/youruser/subhasayah/internal/textlayout"
)

// Layout proportions, as fractions of the surface width.
const (
	titleSizeRatio     = 0.06
	titleTopRatio      = 0.05
	marginRatio        = 0.12
	signatureSizeRatio = 0.035
	signatureBaseRatio = 0.06
	qrSizeRatio        = 0.14
	qrInsetRatio       = 0.04

	lineHeight = 1.2

	// DefaultFontSizePx applies when a style carries no font size.
	DefaultFontSizePx = 48
)

// overlay darkens the photo so text stays legible.
var overlay = color.NRGBA{R: 0, G: 0, B: 0, A: 64}

// Style describes one card. Sizes are in pixels of a CanvasSizePx-wide
// canvas; drawing onto a different surface scales them proportionally.
type Style struct {
	Background   color.Color
	Foreground   color.Color
	Title        string
	Body         string
	FontFamily   string
	FontSizePx   float64
	CanvasSizePx int
	Signature    string
	QRText       string
}

// FaceSource supplies font faces able to draw text. Each call must return
// a face that the caller may use exclusively.
type FaceSource interface {
	Face(families, text string, size float64) font.Face
	BoldFace(families, text string, size float64) font.Face
}

// titleFamily is the heading font; the body uses the style's family.
const titleFamily = `"Noto Sans", sans-serif`

// NewSurface allocates a blank width x height drawing surface.
func NewSurface(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// Render allocates a size x size surface and composes the card on it.
func Render(style Style, photo image.Image, size int, fonts FaceSource) (*image.RGBA, error) {
	dst := NewSurface(size, size)
	if err := Compose(dst, style, photo, fonts); err != nil {
		return nil, err
	}
	return dst, nil
}

// Compose draws the card onto dst. photo may be nil for a background-only
// card; otherwise it is drawn cover-fitted into the square at the top-left
// of dst and dimmed. Only dst is modified.
func Compose(dst *image.RGBA, style Style, photo image.Image, fonts FaceSource) error {
	b := dst.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: empty surface %dx%d", ErrInvalidImage, b.Dx(), b.Dy())
	}
	if b.Min != (image.Point{}) {
		return fmt.Errorf("surface must start at the origin, got %v", b.Min)
	}
	w, h := float64(b.Dx()), float64(b.Dy())
	dc := gg.NewContextForRGBA(dst)

	dc.SetColor(colorOr(style.Background, color.White))
	dc.Clear()

	if photo != nil {
		side := min(b.Dx(), b.Dy())
		dc.DrawImage(imaging.Fill(photo, side, side, imaging.Center, imaging.Lanczos), 0, 0)
		dc.SetColor(overlay)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()
	}

	fg := colorOr(style.Foreground, color.Black)
	dc.SetColor(fg)

	if title := strings.TrimSpace(style.Title); title != "" {
		dc.SetFontFace(fonts.BoldFace(titleFamily, title, math.Round(w*titleSizeRatio)))
		dc.DrawStringAnchored(title, w/2, w*titleTopRatio, 0.5, 1)
	}

	drawBody(dc, style, fonts, w, h)

	if sig := strings.TrimSpace(style.Signature); sig != "" {
		sig = "— " + sig
		dc.SetFontFace(fonts.Face(style.FontFamily, sig, w*signatureSizeRatio))
		dc.DrawStringAnchored(sig, w/2, h-w*signatureBaseRatio, 0.5, 0)
	}

	if style.QRText != "" {
		side := int(w * qrSizeRatio)
		qr, err := GenerateQRImage(style.QRText, side)
		if err != nil {
			return fmt.Errorf("qr badge: %w", err)
		}
		inset := int(w * qrInsetRatio)
		qb := qr.Bounds()
		dc.DrawImage(qr, b.Dx()-inset-qb.Dx(), b.Dy()-inset-qb.Dy())
	}
	return nil
}

// BodyFontSize is the body font size on a surface width pixels wide.
func BodyFontSize(style Style, width float64) float64 {
	size := style.FontSizePx
	if size <= 0 {
		size = DefaultFontSizePx
	}
	if style.CanvasSizePx > 0 {
		size *= width / float64(style.CanvasSizePx)
	}
	return size
}

func drawBody(dc *gg.Context, style Style, fonts FaceSource, w, h float64) {
	body := strings.TrimSpace(style.Body)
	if body == "" {
		return
	}
	size := BodyFontSize(style, w)
	dc.SetFontFace(fonts.BoldFace(style.FontFamily, body, size))

	measure := func(s string) float64 {
		width, _ := dc.MeasureString(s)
		return width
	}
	margin := w * marginRatio
	lines := textlayout.Layout(body, w-2*margin, measure)

	step := size * lineHeight
	y := h/2 - float64(len(lines))*step/2
	for _, line := range lines {
		dc.DrawStringAnchored(line, w/2, y, 0.5, 0.5)
		y += step
	}
}

func colorOr(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}
