package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/youruser/subhasayah/internal/fonts"
)

func TestBuiltin(t *testing.T) {
	ps := Builtin(2026)
	if len(ps) != 3 {
		t.Fatalf("got %d presets", len(ps))
	}
	en, ok := Lookup(ps, "EN")
	if !ok || en.Message != "Happy New Year 2026" {
		t.Fatalf("en preset = %+v", en)
	}
}

func TestLoadPresetsFromDataDir(t *testing.T) {
	dir := t.TempDir()
	csv := "language,label,message,fonts,font_labels\n" +
		"ta,தமிழ்,புத்தாண்டு வாழ்த்துகள் {year},\"\"\"Noto Sans Tamil\"\", sans-serif|monospace\",Noto Sans Tamil\n" +
		",skipped,no language,,\n" +
		"en,English,Cheers to {year},-,\n"
	if err := os.WriteFile(filepath.Join(dir, "greetings.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	ps, err := LoadPresetsFromDataDir(dir, 2027)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ps) != 2 {
		t.Fatalf("got %d presets: %+v", len(ps), ps)
	}
	ta := ps[0]
	if ta.Message != "புத்தாண்டு வாழ்த்துகள் 2027" {
		t.Errorf("message = %q", ta.Message)
	}
	if len(ta.Fonts) != 2 || ta.Fonts[0].Label != "Noto Sans Tamil" || ta.Fonts[1].Label != "monospace" {
		t.Errorf("fonts = %+v", ta.Fonts)
	}
	if ta.Fonts[0].CSS != `"Noto Sans Tamil", sans-serif` {
		t.Errorf("css = %q", ta.Fonts[0].CSS)
	}
	if len(ps[1].Fonts) != 0 {
		t.Errorf("dash cell should give no fonts: %+v", ps[1].Fonts)
	}

	merged := Merge(Builtin(2027), ps)
	if len(merged) != 4 {
		t.Fatalf("merged = %d", len(merged))
	}
	en, _ := Lookup(merged, "en")
	if en.Message != "Cheers to 2027" {
		t.Errorf("custom preset should override builtin, got %q", en.Message)
	}
}

func TestLoadPresetsFromDataDir_Errors(t *testing.T) {
	if _, err := LoadPresetsFromDataDir(t.TempDir(), 2026); err == nil {
		t.Fatal("expected error for empty dir")
	}
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "greetings.csv"), []byte("label,message\nx,y\n"), 0o644)
	if _, err := LoadPresetsFromDataDir(dir, 2026); err == nil {
		t.Fatal("expected error for missing language column")
	}
}

func TestFilter(t *testing.T) {
	ps := Builtin(2026)
	if got := Filter(ps, FilterOptions{}); len(got) != 3 {
		t.Fatalf("empty filter kept %d", len(got))
	}
	if got := Filter(ps, FilterOptions{Languages: []string{"te", "sa"}}); len(got) != 2 {
		t.Fatalf("language filter kept %d", len(got))
	}
	got := Filter(ps, FilterOptions{FreeWords: "devanagari"})
	if len(got) != 1 || got[0].Language != "sa" {
		t.Fatalf("free word filter = %+v", got)
	}
	if got := Filter(ps, FilterOptions{FreeWords: "happy zzz"}); len(got) != 0 {
		t.Fatalf("all words must match, got %+v", got)
	}
}

func asciiCovers(_, text string) bool {
	for _, r := range text {
		if r >= 0x80 {
			return false
		}
	}
	return true
}

func TestPickLanguage(t *testing.T) {
	ps := Builtin(2026)
	tests := []struct {
		name   string
		lang   string
		covers CoverageFunc
		want   string
		kept   bool
	}{
		{"drawable is kept", "te", func(string, string) bool { return true }, "te", true},
		{"falls back to en", "te", asciiCovers, "en", false},
		{"unknown language is kept", "xx", asciiCovers, "xx", true},
		{"nothing drawable", "sa", func(string, string) bool { return false }, "sa", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, kept := PickLanguage(ps, tt.lang, tt.covers, "en")
			if got != tt.want || kept != tt.kept {
				t.Fatalf("PickLanguage = %s, %v; want %s, %v", got, kept, tt.want, tt.kept)
			}
		})
	}
}

func TestPickLanguage_BundledFontsOnly(t *testing.T) {
	reg := fonts.NewRegistry(nil)
	ps := Builtin(2026)
	te, _ := Lookup(ps, "te")
	if Drawable(te, reg.Covers) {
		t.Fatal("telugu preset should not be drawable with the bundled fonts")
	}
	if got, kept := PickLanguage(ps, "te", reg.Covers, "en"); got != "en" || kept {
		t.Fatalf("PickLanguage = %s, %v", got, kept)
	}
}

func TestShippedDataKeepsBuiltinMessages(t *testing.T) {
	extra, err := LoadPresetsFromDataDir(filepath.Join("..", "..", "data"), 2026)
	if err != nil {
		t.Fatal(err)
	}
	builtin := Builtin(2026)
	merged := Merge(builtin, extra)
	for _, want := range builtin {
		got, ok := Lookup(merged, want.Language)
		if !ok || got.Message != want.Message {
			t.Errorf("%s message = %q, want %q", want.Language, got.Message, want.Message)
		}
	}
	if _, ok := Lookup(merged, "hi"); !ok {
		t.Fatal("shipped data should add hi")
	}
}
