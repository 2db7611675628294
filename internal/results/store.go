// Package results persists the latest scan report as a JSON snapshot.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"PatternSentinel/internal/model"
)

// Load reads a previously written report. Returns nil without error when
// no snapshot exists yet.
func Load(path string) (*model.ScanReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var report model.ScanReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}

// Save writes the report, creating parent directories as needed. The write
// goes through a temp file and rename so a crash never leaves a torn
// snapshot behind.
func Save(path string, report *model.ScanReport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
