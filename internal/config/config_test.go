package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/renobudget/internal/estimate"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Limits.MinHomeValue != 50_000 || cfg.Limits.MinYearlyIncome != 8_000 {
		t.Fatalf("limits = %+v, want defaults", cfg.Limits)
	}
	if cfg.General.Locale != "en-US" {
		t.Fatalf("locale = %q, want en-US", cfg.General.Locale)
	}
}

func TestLoadFile_AppliesTableOverrides(t *testing.T) {
	path := writeConfig(t, `
[general]
locale = "en-US"

[limits]
min_home_value = 75000

[tables.coefficients.low]
Kitchen = 0.06

[tables.roi.high]
"Accessory Dwelling Unit" = 2.5
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Limits.MinHomeValue != 75000 {
		t.Errorf("MinHomeValue = %v, want 75000", cfg.Limits.MinHomeValue)
	}
	if cfg.Limits.MaxHomeValue != 10_000_000 {
		t.Errorf("MaxHomeValue = %v, want default kept", cfg.Limits.MaxHomeValue)
	}

	tables, err := cfg.EstimateTables()
	if err != nil {
		t.Fatalf("EstimateTables: %v", err)
	}
	if v, _ := tables.Coefficients.Lookup(estimate.TierLow, estimate.ProjectKitchen); v != 0.06 {
		t.Errorf("Kitchen low coefficient = %v, want 0.06", v)
	}
	if v, _ := tables.ROI.Lookup(estimate.TierHigh, estimate.ProjectAccessoryDwelling); v != 2.5 {
		t.Errorf("ADU high ROI = %v, want 2.5", v)
	}
}

func TestLoadFile_RejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad tier":   "[tables.roi.premium]\nKitchen = 1.0\n",
		"bad limits": "[limits]\nmin_home_value = 500\nmax_home_value = 100\n",
		"bad locale": "[general]\nlocale = \"not a locale!\"\n",
		"bad toml":   "[general\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSaveFileThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Appearance.Theme = "terminal"
	cfg.Tables.Coefficients = map[string]map[string]float64{"middle": {"Deck Addition": 0.05}}

	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if !Exists(path) {
		t.Fatal("config file not created")
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"Deck Addition" = 0.05`) {
		t.Errorf("saved config missing override:\n%s", data)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Appearance.Theme != "terminal" {
		t.Errorf("theme = %q, want terminal", got.Appearance.Theme)
	}
}

func TestDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := Dir(); got != filepath.Join("/tmp/xdg", "renobudget") {
		t.Fatalf("Dir() = %q", got)
	}
}
