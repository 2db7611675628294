// Package scan orchestrates one full pattern sweep across loaded charts.
package scan

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"PatternSentinel/internal/candlestick"
	"PatternSentinel/internal/cuphandle"
	"PatternSentinel/internal/model"
)

// Pipeline fans symbols out to a bounded worker pool and folds the
// per-symbol findings into a single report.
type Pipeline struct {
	candles *candlestick.Scanner
	cups    *cuphandle.Detector
	workers int
	log     zerolog.Logger
}

// NewPipeline wires both detectors into a pipeline with the given
// concurrency bound.
func NewPipeline(candles *candlestick.Scanner, cups *cuphandle.Detector, workers int, log zerolog.Logger) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{candles: candles, cups: cups, workers: workers, log: log}
}

// Run scans every chart and aggregates one report. Symbols are scanned
// concurrently but the report is deterministic: alphabetical order, and
// only symbols with at least one finding are listed. skipped is carried
// through from the loader.
func (p *Pipeline) Run(ctx context.Context, charts []model.Chart, skipped int) (*model.ScanReport, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	var mu sync.Mutex
	found := make([]model.SymbolReport, 0, len(charts))

	for _, chart := range charts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rep := p.scanOne(chart)
			if len(rep.Candlestick) == 0 && rep.CupHandle == nil {
				return nil
			}
			mu.Lock()
			found = append(found, rep)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Symbol < found[j].Symbol })

	report := &model.ScanReport{
		GeneratedAt: time.Now().UTC(),
		Scanned:     len(charts),
		Skipped:     skipped,
		Symbols:     found,
	}
	for _, r := range found {
		report.CandlestickTotal += len(r.Candlestick)
		if r.CupHandle != nil {
			report.CupHandleTotal++
		}
	}
	return report, nil
}

func (p *Pipeline) scanOne(chart model.Chart) model.SymbolReport {
	rep := model.SymbolReport{
		Symbol:      chart.Symbol,
		Candlestick: p.candles.ScanLastWeek(chart.Series, chart.ATR),
		CupHandle:   p.cups.Detect(chart.Series),
	}
	if len(rep.Candlestick) > 0 || rep.CupHandle != nil {
		p.log.Debug().
			Str("symbol", chart.Symbol).
			Int("candlestick", len(rep.Candlestick)).
			Bool("cup_and_handle", rep.CupHandle != nil).
			Msg("patterns found")
	}
	return rep
}
