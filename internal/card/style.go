package card

import (
	"strings"

	imagepkg "github.com/youruser/subhasayah/internal/image"
	"github.com/youruser/subhasayah/internal/presets"
)

// Options are the choices a user makes for a card. Empty fields take
// defaults.
type Options struct {
	Theme      string
	Lang       string
	Message    string
	Title      string
	Font       string
	FontSize   float64
	Background string
	Foreground string
	Signature  string
	QRText     string
}

// Defaults fill in whatever Options leave empty.
type Defaults struct {
	Year       int
	Theme      string
	Language   string
	FontSize   float64
	CanvasSize int
}

// NewStyle resolves opt into a drawable style. The language preset
// supplies the message and font when they are not given. Explicit
// background and foreground colours override the theme.
func NewStyle(opt Options, def Defaults, ps []presets.Preset) (imagepkg.Style, error) {
	th := ThemeByName(firstNonEmpty(opt.Theme, def.Theme))
	style := imagepkg.Style{
		Background:   th.Background,
		Foreground:   th.Foreground,
		Title:        firstNonEmpty(opt.Title, DefaultTitle(def.Year)),
		Body:         opt.Message,
		FontFamily:   opt.Font,
		FontSizePx:   opt.FontSize,
		CanvasSizePx: def.CanvasSize,
		Signature:    opt.Signature,
		QRText:       opt.QRText,
	}
	if opt.Background != "" {
		bg, err := ParseHexColor(opt.Background)
		if err != nil {
			return style, err
		}
		style.Background = bg
	}
	if opt.Foreground != "" {
		fg, err := ParseHexColor(opt.Foreground)
		if err != nil {
			return style, err
		}
		style.Foreground = fg
	}
	if p, ok := presets.Lookup(ps, firstNonEmpty(opt.Lang, def.Language)); ok {
		if strings.TrimSpace(style.Body) == "" {
			style.Body = p.Message
		}
		if style.FontFamily == "" && len(p.Fonts) > 0 {
			style.FontFamily = p.Fonts[0].CSS
		}
	}
	if style.FontSizePx <= 0 {
		style.FontSizePx = def.FontSize
	}
	return style, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
