package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/iconkit/svgtree"
)

func TestDefault(t *testing.T) {
	icons, err := Default()
	if err != nil {
		t.Fatalf("can't load embedded dataset: %s", err)
	}
	if len(icons) == 0 {
		t.Fatal("empty embedded dataset")
	}
	assets := Assets()
	for _, ic := range icons {
		if !ic.HasAsset() {
			continue
		}
		data, err := fs.ReadFile(assets, strings.TrimPrefix(ic.Path, "/"))
		if err != nil {
			t.Errorf("%s: missing asset: %s", ic.Name, err)
			continue
		}
		if _, err := svgtree.Parse(strings.NewReader(string(data))); err != nil {
			t.Errorf("%s: invalid asset: %s", ic.Name, err)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	for _, src := range []string{
		`{`,
		`[{"name": ""}]`,
		`[{"name": "a", "url": "x.com"}, {"name": "b", "url": "x.com"}]`,
	} {
		if _, err := Load(strings.NewReader(src)); err == nil {
			t.Errorf("%s: expected error", src)
		}
	}
}

func TestLoadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "icons.json")
	src := `[{"name": "example", "url": "example.com", "color": "#ff0000"}]`
	if err := os.WriteFile(name, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	icons, err := LoadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if len(icons) != 1 || icons[0].Color != "#ff0000" || icons[0].Key() != "example.com" {
		t.Errorf("unexpected icons %v", icons)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestIconHelpers(t *testing.T) {
	ic := Icon{
		Name:        "éclair",
		Description: map[string]string{"zh": "闪电", "fr": "éclair"},
		URL:         "eclair.example.com",
	}
	if got := ic.Placeholder(); got != "é" {
		t.Errorf("unexpected placeholder %q", got)
	}
	if got := (Icon{Name: "delta"}).Placeholder(); got != "d" {
		t.Errorf("placeholder must keep the case of the name, got %q", got)
	}
	if got := (Icon{}).Placeholder(); got != "?" {
		t.Errorf("unexpected placeholder %q", got)
	}
	if got := ic.ExternalURL(); got != "https://eclair.example.com" {
		t.Errorf("unexpected url %s", got)
	}
	if got := (Icon{URL: "http://a.com"}).ExternalURL(); got != "http://a.com" {
		t.Errorf("unexpected url %s", got)
	}
	if got := (Icon{}).ExternalURL(); got != "" {
		t.Errorf("expected empty url, got %s", got)
	}
	if got := ic.LocalizedDescription("zh"); got != "闪电" {
		t.Errorf("unexpected description %s", got)
	}
	// no "en": first language in order
	if got := ic.LocalizedDescription("de"); got != "éclair" {
		t.Errorf("unexpected fallback %s", got)
	}
	if got := (Icon{Name: "x"}).Key(); got != "x" {
		t.Errorf("unexpected key %s", got)
	}
}

func TestClone(t *testing.T) {
	icons := []Icon{{Name: "a", Color: "#fff", Description: map[string]string{"en": "A"}}}
	c := Clone(icons)
	c[0].Color = "#000"
	c[0].Description["en"] = "changed"
	if icons[0].Color != "#fff" || icons[0].Description["en"] != "A" {
		t.Error("clone shares state with the original")
	}
}
