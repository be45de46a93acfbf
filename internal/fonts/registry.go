// Package fonts resolves font family names to faces.
//
// The Go font family is always available; further TrueType files can be
// registered by family name. Family lists are accepted in CSS form
// (`"Noto Sans Telugu", system-ui, sans-serif`) and resolved left to right.
// A family whose font lacks glyphs for the text being drawn is skipped.
package fonts

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	DefaultFamily = "Go"
	BoldFamily    = "Go Bold"
)

// generic CSS families map onto the bundled fonts.
var generic = map[string]string{
	"sans-serif": DefaultFamily,
	"serif":      DefaultFamily,
	"system-ui":  DefaultFamily,
	"cursive":    DefaultFamily,
	"fantasy":    DefaultFamily,
	"monospace":  "Go Mono",
}

// Registry holds parsed fonts. Parsed fonts are shared; faces are not,
// because a truetype face caches glyphs and is unsafe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	fonts  map[string]*truetype.Font
	names  map[string]string
	logger *zap.Logger

	warnMu sync.Mutex
	warned map[string]struct{}
}

// NewRegistry returns a registry preloaded with the Go fonts.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		fonts:  map[string]*truetype.Font{},
		names:  map[string]string{},
		logger: logger,
		warned: map[string]struct{}{},
	}
	builtin := map[string][]byte{
		DefaultFamily: goregular.TTF,
		BoldFamily:    gobold.TTF,
		"Go Medium":   gomedium.TTF,
		"Go Mono":     gomono.TTF,
	}
	for family, ttf := range builtin {
		if err := r.Register(family, ttf); err != nil {
			// bundled fonts always parse
			panic(fmt.Errorf("parse bundled font %s: %w", family, err))
		}
	}
	return r
}

// Register parses ttf and makes it available as family.
func (r *Registry) Register(family string, ttf []byte) error {
	key := normalize(family)
	if key == "" {
		return fmt.Errorf("font family cannot be empty")
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	r.mu.Lock()
	r.fonts[key] = f
	r.names[key] = strings.Trim(strings.TrimSpace(family), `"'`)
	r.mu.Unlock()
	r.logger.Debug("font registered", zap.String("family", family))
	return nil
}

// RegisterFile reads a TrueType file from disk and registers it.
func (r *Registry) RegisterFile(family, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font file %s: %w", path, err)
	}
	return r.Register(family, data)
}

// Has reports whether family resolves without falling back.
func (r *Registry) Has(family string) bool {
	_, ok := r.lookup(family)
	return ok
}

// Families lists registered family names in sorted order.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Face returns a new face at size pixels (72 DPI) for the first family in
// the list whose font can draw every glyph of text. When none can, any
// other registered font that covers text is used, and failing that the
// first resolvable family (or the default) with a warning.
func (r *Registry) Face(families, text string, size float64) font.Face {
	return newFace(r.resolve(families, text, false), size)
}

// BoldFace is like Face but prefers "<family> Bold" for each family and
// falls back to the bundled bold font.
func (r *Registry) BoldFace(families, text string, size float64) font.Face {
	return newFace(r.resolve(families, text, true), size)
}

// Covers reports whether some registered font reachable from families can
// draw every glyph of text.
func (r *Registry) Covers(families, text string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.covering(r.candidates(families, false), text)
	return ok
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
}

func (r *Registry) resolve(families, text string, bold bool) *truetype.Font {
	r.mu.RLock()
	cands := r.candidates(families, bold)
	f, ok := r.covering(cands, text)
	r.mu.RUnlock()
	if ok {
		return f
	}
	r.warnMissing(families, text, missingGlyphs(cands[0], text))
	return cands[0]
}

// candidates lists the fonts named by families in order, ending with the
// default. Callers hold r.mu.
func (r *Registry) candidates(families string, bold bool) []*truetype.Font {
	var out []*truetype.Font
	seen := map[*truetype.Font]bool{}
	add := func(key string) {
		if f, ok := r.fonts[key]; ok && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, name := range strings.Split(families, ",") {
		name = normalize(name)
		if name == "" {
			continue
		}
		if alias, ok := generic[name]; ok {
			name = normalize(alias)
		}
		if bold {
			add(name + " bold")
		}
		add(name)
	}
	if bold {
		add(normalize(BoldFamily))
	}
	add(normalize(DefaultFamily))
	return out
}

// covering returns the first candidate that draws text, then any other
// registered font that does, in family order. Callers hold r.mu.
func (r *Registry) covering(cands []*truetype.Font, text string) (*truetype.Font, bool) {
	if f, ok := firstCovering(cands, text); ok {
		return f, true
	}
	keys := make([]string, 0, len(r.fonts))
	for k := range r.fonts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rest := make([]*truetype.Font, 0, len(keys))
	for _, k := range keys {
		rest = append(rest, r.fonts[k])
	}
	return firstCovering(rest, text)
}

func firstCovering[F glyphIndexer](fonts []F, text string) (F, bool) {
	for _, f := range fonts {
		if missingGlyphs(f, text) == 0 {
			return f, true
		}
	}
	var zero F
	return zero, false
}

func (r *Registry) warnMissing(families, text string, missing int) {
	key := families + "\x00" + text
	r.warnMu.Lock()
	_, done := r.warned[key]
	r.warned[key] = struct{}{}
	r.warnMu.Unlock()
	if done {
		return
	}
	r.logger.Warn("no registered font covers text, glyphs will be missing",
		zap.String("families", families),
		zap.Int("missing", missing),
		zap.String("text", text),
	)
}

type glyphIndexer interface {
	Index(x rune) truetype.Index
}

// missingGlyphs counts the runes of text that f has no glyph for. Spaces
// and format characters such as ZWJ are not drawn and never count.
func missingGlyphs(f glyphIndexer, text string) int {
	n := 0
	for _, c := range text {
		if unicode.IsSpace(c) || unicode.Is(unicode.Cf, c) {
			continue
		}
		if f.Index(c) == 0 {
			n++
		}
	}
	return n
}

func (r *Registry) lookup(families string) (*truetype.Font, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range strings.Split(families, ",") {
		name = normalize(name)
		if name == "" {
			continue
		}
		if f, ok := r.fonts[name]; ok {
			return f, true
		}
		if alias, ok := generic[name]; ok {
			if f, ok := r.fonts[normalize(alias)]; ok {
				return f, true
			}
		}
	}
	return nil, false
}

func normalize(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, `"'`)
	return strings.ToLower(strings.TrimSpace(name))
}
