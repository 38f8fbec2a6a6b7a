package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PNGSize != 512 {
		t.Errorf("expected default size 512, got %d", cfg.PNGSize)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %s", cfg.FetchTimeout)
	}
	if cfg.Lang != "en" {
		t.Errorf("expected default lang en, got %s", cfg.Lang)
	}
}

func TestLoadValues(t *testing.T) {
	t.Setenv("ICONKIT_PNG_SIZE", "128")
	t.Setenv("ICONKIT_FETCH_TIMEOUT", "0")
	t.Setenv("ICONKIT_LANG", "zh")
	t.Setenv("NEXT_PUBLIC_BASE_PATH", "/legacy")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PNGSize != 128 || cfg.FetchTimeout != 0 || cfg.Lang != "zh" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if got := cfg.EffectiveBasePath(); got != "/legacy" {
		t.Errorf("expected legacy base path, got %q", got)
	}

	t.Setenv("ICONKIT_BASE_PATH", "/icons-site")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.EffectiveBasePath(); got != "/icons-site" {
		t.Errorf("expected base path /icons-site, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		key, value, want string
	}{
		{"ICONKIT_PNG_SIZE", "not-an-int", "parse env:"},
		{"ICONKIT_PNG_SIZE", "-4", "must be positive"},
		{"ICONKIT_FETCH_TIMEOUT", "-1s", "must not be negative"},
	} {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q error, got %v", tc.want, err)
			}
		})
	}

	t.Run("exclusive assets", func(t *testing.T) {
		t.Setenv("ICONKIT_ASSET_DIR", "/tmp")
		t.Setenv("ICONKIT_ASSET_URL", "https://example.com")
		if _, err := Load(); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestThemePath(t *testing.T) {
	cfg := Config{ThemeFile: "/tmp/x.json"}
	if p, err := cfg.ThemePath(); err != nil || p != "/tmp/x.json" {
		t.Errorf("unexpected path %s (%v)", p, err)
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("HOME", "/tmp/home")
	p, err := Config{}.ThemePath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(p) != "storage.json" || filepath.Base(filepath.Dir(p)) != "iconkit" {
		t.Errorf("unexpected default path %s", p)
	}
}
