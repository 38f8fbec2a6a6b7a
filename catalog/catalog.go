// Package catalog defines the icon records shown in the gallery
// and loads them from a JSON dataset. A default dataset and its
// SVG assets are embedded.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultLanguage is used when a description lacks the requested language.
const DefaultLanguage = "en"

// Icon is a catalog entry.
type Icon struct {
	Name        string            `json:"name"`
	Path        string            `json:"path,omitempty"`
	Description map[string]string `json:"description,omitempty"`
	Color       string            `json:"color"`
	URL         string            `json:"url"`
}

// Key identifies the icon in a catalog: its URL, or its name
// for entries without one.
func (ic Icon) Key() string {
	if ic.URL != "" {
		return ic.URL
	}
	return ic.Name
}

// HasAsset reports whether the icon references an SVG asset.
func (ic Icon) HasAsset() bool { return ic.Path != "" }

// Placeholder is the glyph displayed in place of a missing asset:
// the first character of the name, as written.
func (ic Icon) Placeholder() string {
	r, _ := utf8.DecodeRuneInString(ic.Name)
	if r == utf8.RuneError {
		return "?"
	}
	return string(r)
}

// ExternalURL returns the link of the brand, adding an https scheme
// when the dataset omits it. It is empty when the icon has no URL.
func (ic Icon) ExternalURL() string {
	u := strings.TrimSpace(ic.URL)
	if u == "" || strings.HasPrefix(u, "http") {
		return u
	}
	return "https://" + u
}

// LocalizedDescription returns the description in lang, falling back
// to DefaultLanguage then to the first language in alphabetical order.
func (ic Icon) LocalizedDescription(lang string) string {
	if d, ok := ic.Description[lang]; ok {
		return d
	}
	if d, ok := ic.Description[DefaultLanguage]; ok {
		return d
	}
	langs := make([]string, 0, len(ic.Description))
	for l := range ic.Description {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	if len(langs) == 0 {
		return ""
	}
	return ic.Description[langs[0]]
}

func (ic Icon) clone() Icon {
	if ic.Description != nil {
		desc := make(map[string]string, len(ic.Description))
		for k, v := range ic.Description {
			desc[k] = v
		}
		ic.Description = desc
	}
	return ic
}

// Clone returns a deep copy of icons.
func Clone(icons []Icon) []Icon {
	out := make([]Icon, len(icons))
	for i, ic := range icons {
		out[i] = ic.clone()
	}
	return out
}

// Load decodes a JSON array of icons and checks that keys are unique
// and names are not empty.
func Load(r io.Reader) ([]Icon, error) {
	var icons []Icon
	if err := json.NewDecoder(r).Decode(&icons); err != nil {
		return nil, fmt.Errorf("catalog: decoding dataset: %w", err)
	}
	seen := make(map[string]bool, len(icons))
	for i, ic := range icons {
		if strings.TrimSpace(ic.Name) == "" {
			return nil, fmt.Errorf("catalog: icon %d has no name", i)
		}
		if seen[ic.Key()] {
			return nil, fmt.Errorf("catalog: duplicate icon %q", ic.Key())
		}
		seen[ic.Key()] = true
	}
	return icons, nil
}

// LoadFile reads the dataset stored in the named file.
func LoadFile(name string) ([]Icon, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

//go:embed data/icons.json
var dataset embed.FS

//go:embed static
var static embed.FS

// Default returns the embedded dataset.
func Default() ([]Icon, error) {
	f, err := dataset.Open("data/icons.json")
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Assets returns the embedded SVG assets. Paths match the icon
// paths without their leading slash, as in "icons/aurora.svg".
func Assets() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// "static" is a valid embedded directory
		panic(err)
	}
	return sub
}
