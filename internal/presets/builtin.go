package presets

import "fmt"

// Builtin returns the presets shipped with the application.
func Builtin(year int) []Preset {
	return []Preset{
		{
			Language: "te",
			Label:    "తెలుగు",
			Message:  fmt.Sprintf("నూతన సంవత్సర శుభాకాంక్షలు %d", year),
			Fonts:    []FontOption{{Label: "Noto Sans Telugu", CSS: `"Noto Sans Telugu", system-ui, sans-serif`}},
		},
		{
			Language: "en",
			Label:    "English",
			Message:  fmt.Sprintf("Happy New Year %d", year),
			Fonts:    []FontOption{{Label: "Noto Sans", CSS: `"Noto Sans", system-ui, sans-serif`}},
		},
		{
			Language: "sa",
			Label:    "संस्कृतम्",
			Message:  fmt.Sprintf("नववर्षशुभाशयाः %d", year),
			Fonts:    []FontOption{{Label: "Noto Serif Devanagari", CSS: `"Noto Serif Devanagari", "Noto Sans", serif`}},
		},
	}
}
