// Package config loads and saves renobudget settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/renobudget/internal/estimate"
	"github.com/theirongolddev/renobudget/internal/intake"
	"github.com/theirongolddev/renobudget/internal/money"
)

// Config holds all renobudget configuration.
type Config struct {
	General    GeneralConfig      `toml:"general"`
	Limits     intake.Limits      `toml:"limits"`
	Appearance AppearanceConfig   `toml:"appearance"`
	Server     ServerConfig       `toml:"server"`
	Tables     estimate.Overrides `toml:"tables,omitempty"`
}

// GeneralConfig holds display preferences.
type GeneralConfig struct {
	Locale         string `toml:"locale"`
	CurrencySymbol string `toml:"currency_symbol"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds HTTP listener settings for `renobudget serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Locale:         money.DefaultLocale,
			CurrencySymbol: money.DefaultSymbol,
		},
		Limits: intake.DefaultLimits(),
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "renobudget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "renobudget")
}

// Path returns the full path to the default config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the default config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads and validates the config at path. A missing file yields the
// defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the local user
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks limits, locale and table overrides.
func (c Config) Validate() error {
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	if _, err := c.Formatter(); err != nil {
		return err
	}
	return c.Tables.Validate()
}

// Formatter builds the money formatter for the configured locale.
func (c Config) Formatter() (*money.Formatter, error) {
	return money.NewFormatter(c.General.Locale, c.General.CurrencySymbol)
}

// EstimateTables returns the built-in tables with any overrides applied.
func (c Config) EstimateTables() (estimate.Tables, error) {
	return estimate.DefaultTables().WithOverrides(c.Tables)
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config to path, creating its directory.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is chosen by the local user
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
