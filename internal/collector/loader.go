// Package collector loads per-symbol chart files into price series for
// the scan pipeline.
package collector

import "PatternSentinel/internal/model"

// Loader supplies the chart set for one scan run. skipped counts inputs
// that existed but could not be turned into a usable series.
type Loader interface {
	Load() (charts []model.Chart, skipped int, err error)
	Name() string
}

// MemoryLoader serves fixed charts for development and testing.
type MemoryLoader struct {
	Charts []model.Chart
}

func (m *MemoryLoader) Name() string { return "memory" }

func (m *MemoryLoader) Load() ([]model.Chart, int, error) {
	return m.Charts, 0, nil
}
