package presets

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func parseListCell(s string) []string {
	parts := strings.Split(s, "|")
	out := []string{}
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" && t != "-" {
			out = append(out, t)
		}
	}
	return out
}

// LoadPresetsFromDataDir loads greeting CSV files from a data directory
// (best-effort). greetings.csv and custom_greetings.csv are both optional,
// but at least one must exist. "{year}" in a message is replaced by year.
func LoadPresetsFromDataDir(dataDir string, year int) ([]Preset, error) {
	files := []string{
		filepath.Join(dataDir, "greetings.csv"),
		filepath.Join(dataDir, "custom_greetings.csv"),
	}

	var all []Preset
	var found bool
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			// skip missing files
			continue
		}
		found = true
		ps, err := loadSingleCSV(f, year)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
		all = append(all, ps...)
	}
	if !found {
		return nil, fmt.Errorf("no input CSVs found in %s", dataDir)
	}
	return all, nil
}

// Merge overlays extra on base by language; presets from extra win.
func Merge(base, extra []Preset) []Preset {
	out := make([]Preset, 0, len(base)+len(extra))
	index := map[string]int{}
	for _, p := range append(append([]Preset{}, base...), extra...) {
		if i, ok := index[p.Language]; ok {
			out[i] = p
			continue
		}
		index[p.Language] = len(out)
		out = append(out, p)
	}
	return out
}

func loadSingleCSV(path string, year int) ([]Preset, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	header := rows[0]
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	if _, ok := cols["language"]; !ok {
		return nil, fmt.Errorf("csv %s has no language column", path)
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Preset{}
	for _, row := range rows[1:] {
		lang := get(row, "language")
		if lang == "" {
			continue
		}
		p := Preset{
			Language: lang,
			Label:    get(row, "label"),
			Message:  strings.ReplaceAll(get(row, "message"), "{year}", strconv.Itoa(year)),
		}
		if p.Label == "" {
			p.Label = lang
		}
		labels := parseListCell(get(row, "font_labels"))
		for i, css := range parseListCell(get(row, "fonts")) {
			opt := FontOption{CSS: css}
			if i < len(labels) {
				opt.Label = labels[i]
			} else {
				opt.Label = strings.Trim(strings.SplitN(css, ",", 2)[0], `"' `)
			}
			p.Fonts = append(p.Fonts, opt)
		}
		out = append(out, p)
	}
	return out, nil
}
