package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"PatternSentinel/internal/candlestick"
	"PatternSentinel/internal/cuphandle"
	"PatternSentinel/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Charts struct {
		Dir string `yaml:"dir"`
	} `yaml:"charts"`
	Scan struct {
		Workers    int    `yaml:"workers"`
		ReportPath string `yaml:"report_path"`
		Cron       string `yaml:"cron"`
		RunOnStart bool   `yaml:"run_on_start"`
		Once       bool   `yaml:"once"`
	} `yaml:"scan"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Logging     logging.Config     `yaml:"logging"`
	Candlestick candlestick.Config `yaml:"candlestick"`
	CupHandle   cuphandle.Config   `yaml:"cup_handle"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Detection thresholds are seeded with their defaults first so a
// config file only has to name the ones it changes.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Candlestick = candlestick.DefaultConfig()
	cfg.CupHandle = cuphandle.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("CHARTS_DIR"); v != "" {
		cfg.Charts.Dir = v
	}
	if v := os.Getenv("REPORT_PATH"); v != "" {
		cfg.Scan.ReportPath = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Scan.Cron = v
	}
	if v := os.Getenv("SCAN_WORKERS"); v != "" {
		var workers int
		if _, err := fmt.Sscanf(v, "%d", &workers); err == nil {
			cfg.Scan.Workers = workers
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RUN_ON_START"); v == "1" || v == "true" {
		cfg.Scan.RunOnStart = true
	}
	if v := os.Getenv("SCAN_ONCE"); v == "1" || v == "true" {
		cfg.Scan.Once = true
	}

	// Defaults
	if cfg.Charts.Dir == "" {
		cfg.Charts.Dir = "data/charts"
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = 4
	}
	if cfg.Scan.ReportPath == "" {
		cfg.Scan.ReportPath = "data/scan_report.json"
	}
	if cfg.Scan.Cron == "" {
		cfg.Scan.Cron = "0 0 6 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/pattern_sentinel.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and the detection
// thresholds describe usable windows.
func (c *Config) Validate() error {
	if c.Charts.Dir == "" {
		return fmt.Errorf("charts.dir is required")
	}
	if c.Scan.Workers <= 0 {
		return fmt.Errorf("scan.workers must be positive")
	}
	if !c.Scan.Once && c.Scan.Cron == "" {
		return fmt.Errorf("scan.cron is required unless scan.once is set")
	}
	if c.Candlestick.ShadowBodyRatio <= 0 {
		return fmt.Errorf("candlestick.shadow_body_ratio must be positive")
	}
	if c.CupHandle.MinDepthPercent >= c.CupHandle.MaxDepthPercent {
		return fmt.Errorf("cup_handle depth band is inverted")
	}
	if c.CupHandle.MinSymmetry >= c.CupHandle.MaxSymmetry {
		return fmt.Errorf("cup_handle symmetry band is inverted")
	}
	if c.CupHandle.HandleMinBars > c.CupHandle.HandleMaxBars {
		return fmt.Errorf("cup_handle handle window is inverted")
	}
	return nil
}
