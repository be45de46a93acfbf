package presets

import "strings"

type FilterOptions struct {
	Languages []string
	FreeWords string
}

// Filter keeps presets matching any of the languages and all free words.
func Filter(presets []Preset, opt FilterOptions) []Preset {
	var out []Preset
	for _, p := range presets {
		if len(opt.Languages) > 0 {
			matched := false
			for _, l := range opt.Languages {
				if strings.EqualFold(p.Language, l) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if opt.FreeWords != "" {
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				k = strings.ToLower(k)
				if !strings.Contains(strings.ToLower(p.Label), k) &&
					!strings.Contains(strings.ToLower(p.Message), k) &&
					!fontsContain(p.Fonts, k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// Lookup returns the preset for lang.
func Lookup(presets []Preset, lang string) (Preset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Language, lang) {
			return p, true
		}
	}
	return Preset{}, false
}

func fontsContain(fonts []FontOption, k string) bool {
	for _, f := range fonts {
		if strings.Contains(strings.ToLower(f.Label), k) || strings.Contains(strings.ToLower(f.CSS), k) {
			return true
		}
	}
	return false
}

// CoverageFunc reports whether a font family list can draw text.
type CoverageFunc func(families, text string) bool

// Drawable reports whether one of p's fonts can draw its message.
func Drawable(p Preset, covers CoverageFunc) bool {
	for _, f := range p.Fonts {
		if covers(f.CSS, p.Message) {
			return true
		}
	}
	return len(p.Fonts) == 0 && covers("", p.Message)
}

// PickLanguage returns lang when its preset is drawable with the available
// fonts, otherwise the first drawable fallback. The bool reports whether
// lang was kept; it is also kept when no fallback is drawable.
func PickLanguage(presets []Preset, lang string, covers CoverageFunc, fallbacks ...string) (string, bool) {
	if p, ok := Lookup(presets, lang); !ok || Drawable(p, covers) {
		return lang, true
	}
	for _, fb := range fallbacks {
		if p, ok := Lookup(presets, fb); ok && Drawable(p, covers) {
			return fb, false
		}
	}
	return lang, true
}
