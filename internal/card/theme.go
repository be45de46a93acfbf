package card

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// Theme is a background/foreground color pair.
type Theme struct {
	Name       string      `json:"name"`
	Background color.NRGBA `json:"-"`
	Foreground color.NRGBA `json:"-"`
}

var themes = map[string]Theme{
	"light": {Name: "light", Background: mustHex("#f6f4ef"), Foreground: mustHex("#0b3c5d")},
	"blue":  {Name: "blue", Background: mustHex("#0b3c5d"), Foreground: mustHex("#f6f4ef")},
	"dark":  {Name: "dark", Background: mustHex("#101820"), Foreground: mustHex("#f6f4ef")},
}

// ThemeByName returns the named theme, or light for unknown names.
func ThemeByName(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return themes["light"]
}

// Themes lists all themes sorted by name.
func Themes() []Theme {
	out := make([]Theme, 0, len(themes))
	for _, t := range themes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Hex formats c as #rrggbb.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexColor parses #rgb or #rrggbb.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func mustHex(s string) color.NRGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultTitle is the card heading used when none is given.
func DefaultTitle(year int) string {
	return fmt.Sprintf("Happy New Year %d", year)
}
