package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Contract.Enabled || !cfg.Lemon.Enabled || !cfg.Insurance.Enabled ||
		!cfg.Signaling.Enabled || !cfg.RiskPref.Enabled {
		t.Error("all modules should default to enabled without a config file")
	}
	if cfg.Lemon.TotalCars != 100 || cfg.Lemon.ValueHigh != 2400 {
		t.Errorf("lemon defaults not applied: %+v", cfg.Lemon)
	}
	if cfg.Insurance.Sweep.Resolution != 100 {
		t.Errorf("sweep resolution default not applied: %d", cfg.Insurance.Sweep.Resolution)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAMLAndValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
insurance:
  enabled: true
  base_theft_prob: 0.2
  device_theft_prob: 0.3
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("device prob above base prob should fail validation")
	}
}
