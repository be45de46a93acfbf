package presets

// FontOption is one selectable font for a language. CSS holds a
// comma-separated family list, resolved left to right.
type FontOption struct {
	Label string `json:"label"`
	CSS   string `json:"css"`
}

// Preset is the default greeting and font list for one language.
type Preset struct {
	Language string       `json:"language"`
	Label    string       `json:"label"`
	Message  string       `json:"message"`
	Fonts    []FontOption `json:"fonts"`
}
