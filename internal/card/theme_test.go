package card

import (
	"image/color"
	"testing"
)

func TestThemeByName(t *testing.T) {
	if got := ThemeByName("Dark"); Hex(got.Background) != "#101820" || Hex(got.Foreground) != "#f6f4ef" {
		t.Fatalf("dark = %+v", got)
	}
	if got := ThemeByName("neon"); got.Name != "light" {
		t.Fatalf("unknown theme should fall back to light, got %s", got.Name)
	}
	if n := len(Themes()); n != 3 {
		t.Fatalf("Themes() = %d", n)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#0b3c5d", color.NRGBA{0x0b, 0x3c, 0x5d, 0xff}, true},
		{"fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}, true},
		{"#12345", color.NRGBA{}, false},
		{"#zzzzzz", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("ParseHexColor(%q) err = %v", tt.in, err)
		}
		if tt.ok && got != tt.want {
			t.Fatalf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
