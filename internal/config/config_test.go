package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Charts.Dir != "data/charts" {
		t.Errorf("expected default charts dir, got %q", cfg.Charts.Dir)
	}
	if cfg.Scan.Workers != 4 {
		t.Errorf("expected default workers 4, got %d", cfg.Scan.Workers)
	}
	if cfg.CupHandle.MinCandles != 35 {
		t.Errorf("expected seeded detection thresholds, got min_candles=%d", cfg.CupHandle.MinCandles)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileOverridesOnlyNamedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `charts:
  dir: /srv/charts
scan:
  workers: 8
cup_handle:
  min_depth_percent: 15
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Charts.Dir != "/srv/charts" {
		t.Errorf("expected charts dir from file, got %q", cfg.Charts.Dir)
	}
	if cfg.Scan.Workers != 8 {
		t.Errorf("expected workers 8, got %d", cfg.Scan.Workers)
	}
	if cfg.CupHandle.MinDepthPercent != 15 {
		t.Errorf("expected depth floor 15, got %v", cfg.CupHandle.MinDepthPercent)
	}
	if cfg.CupHandle.MaxDepthPercent != 35 {
		t.Errorf("unnamed thresholds must keep defaults, got depth cap %v", cfg.CupHandle.MaxDepthPercent)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("charts:\n  dir: /srv/charts\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CHARTS_DIR", "/env/charts")
	t.Setenv("SCAN_WORKERS", "2")
	t.Setenv("SCAN_ONCE", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Charts.Dir != "/env/charts" {
		t.Errorf("expected env charts dir, got %q", cfg.Charts.Dir)
	}
	if cfg.Scan.Workers != 2 {
		t.Errorf("expected env workers 2, got %d", cfg.Scan.Workers)
	}
	if !cfg.Scan.Once {
		t.Error("expected SCAN_ONCE to enable one-shot mode")
	}
}

func TestValidate_RejectsInvertedDepthBand(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.CupHandle.MinDepthPercent = 40
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted depth band")
	}
}
