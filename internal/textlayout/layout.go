// Package textlayout breaks text into lines that fit a measured width.
package textlayout

import (
	"strings"

	"golang.org/x/image/font"
)

// MeasureFunc reports the rendered width of s.
type MeasureFunc func(s string) float64

// FaceMeasure measures strings with face.
func FaceMeasure(face font.Face) MeasureFunc {
	return func(s string) float64 {
		adv := font.MeasureString(face, s)
		return float64(adv) / 64
	}
}

// Layout splits text on whitespace and packs words greedily into lines no
// wider than maxWidth. A word wider than maxWidth on its own still gets a
// line of its own; words are never split. Empty input yields no lines.
func Layout(text string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && measure(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
