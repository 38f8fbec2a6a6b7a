// Package config reads the iconkit settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the deployment and user settings.
type Config struct {
	// BasePath prefixes asset references, for sub-path hosting.
	BasePath       string `env:"ICONKIT_BASE_PATH"`
	LegacyBasePath string `env:"NEXT_PUBLIC_BASE_PATH"`

	PNGSize      int           `env:"ICONKIT_PNG_SIZE" envDefault:"512"`
	FetchTimeout time.Duration `env:"ICONKIT_FETCH_TIMEOUT" envDefault:"30s"`
	Lang         string        `env:"ICONKIT_LANG" envDefault:"en"`

	// ThemeFile is the storage file of the theme preference.
	// Empty means the user configuration directory.
	ThemeFile string `env:"ICONKIT_THEME_FILE"`

	// Catalog is a JSON dataset replacing the embedded one.
	Catalog  string `env:"ICONKIT_CATALOG"`
	AssetDir string `env:"ICONKIT_ASSET_DIR"`
	AssetURL string `env:"ICONKIT_ASSET_URL"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and checks its values.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.PNGSize <= 0 {
		return Config{}, fmt.Errorf("config: ICONKIT_PNG_SIZE must be positive, got %d", cfg.PNGSize)
	}
	if cfg.FetchTimeout < 0 {
		return Config{}, fmt.Errorf("config: ICONKIT_FETCH_TIMEOUT must not be negative, got %s", cfg.FetchTimeout)
	}
	if cfg.AssetDir != "" && cfg.AssetURL != "" {
		return Config{}, fmt.Errorf("config: ICONKIT_ASSET_DIR and ICONKIT_ASSET_URL are exclusive")
	}
	return cfg, nil
}

// EffectiveBasePath returns BasePath, or the legacy variable when unset.
func (c Config) EffectiveBasePath() string {
	if c.BasePath != "" {
		return c.BasePath
	}
	return c.LegacyBasePath
}

// ThemePath returns the theme storage file, defaulting to
// <user config dir>/iconkit/storage.json.
func (c Config) ThemePath() (string, error) {
	if c.ThemeFile != "" {
		return c.ThemeFile, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locating theme storage: %w", err)
	}
	return filepath.Join(dir, "iconkit", "storage.json"), nil
}
