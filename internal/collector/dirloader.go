package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"PatternSentinel/internal/model"
)

// chartFile is the on-disk chart layout: parallel arrays keyed by field,
// oldest bar first. Extra keys (moving averages and the like) are ignored.
type chartFile struct {
	Dates  []string  `json:"dates"`
	Open   []float64 `json:"open"`
	High   []float64 `json:"high"`
	Low    []float64 `json:"low"`
	Close  []float64 `json:"close"`
	Volume []int64   `json:"volume"`
	ATR    float64   `json:"atr"`
}

// DirLoader reads every *.json chart in a directory. The symbol is the
// file name without its extension. Files that fail to parse are logged
// and counted, never fatal: one bad chart must not sink a scan.
type DirLoader struct {
	dir string
	log zerolog.Logger
}

// NewDirLoader creates a loader over the given chart directory.
func NewDirLoader(dir string, log zerolog.Logger) *DirLoader {
	return &DirLoader{dir: dir, log: log}
}

func (l *DirLoader) Name() string { return "dir" }

func (l *DirLoader) Load() ([]model.Chart, int, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, 0, fmt.Errorf("read chart dir: %w", err)
	}

	var charts []model.Chart
	skipped := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		chart, err := l.loadFile(filepath.Join(l.dir, e.Name()))
		if err != nil {
			l.log.Warn().Str("file", e.Name()).Err(err).Msg("skipping unreadable chart")
			skipped++
			continue
		}
		charts = append(charts, chart)
	}
	return charts, skipped, nil
}

func (l *DirLoader) loadFile(path string) (model.Chart, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Chart{}, fmt.Errorf("read chart: %w", err)
	}
	var cf chartFile
	if err := json.Unmarshal(raw, &cf); err != nil {
		return model.Chart{}, fmt.Errorf("decode chart: %w", err)
	}
	if len(cf.Dates) == 0 {
		return model.Chart{}, fmt.Errorf("chart has no bars")
	}
	series, err := model.NewPriceSeries(cf.Dates, cf.Open, cf.High, cf.Low, cf.Close, cf.Volume)
	if err != nil {
		return model.Chart{}, err
	}
	return model.Chart{
		Symbol: strings.TrimSuffix(filepath.Base(path), ".json"),
		Series: series,
		ATR:    cf.ATR,
	}, nil
}
