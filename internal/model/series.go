package model

import "fmt"

// PriceSeries is an oldest-first view over aligned per-day price arrays.
// Detectors treat it as immutable: indices stay stable for the lifetime of
// one scan and the underlying arrays must not be mutated while a scan runs.
type PriceSeries struct {
	dates   []string
	opens   []float64
	highs   []float64
	lows    []float64
	closes  []float64
	volumes []int64
}

// NewPriceSeries builds a series from aligned arrays. All six slices must
// have equal length. The series keeps references rather than copying.
func NewPriceSeries(dates []string, opens, highs, lows, closes []float64, volumes []int64) (*PriceSeries, error) {
	n := len(dates)
	if len(opens) != n || len(highs) != n || len(lows) != n || len(closes) != n || len(volumes) != n {
		return nil, fmt.Errorf("misaligned series: dates=%d open=%d high=%d low=%d close=%d volume=%d",
			n, len(opens), len(highs), len(lows), len(closes), len(volumes))
	}
	return &PriceSeries{
		dates:   dates,
		opens:   opens,
		highs:   highs,
		lows:    lows,
		closes:  closes,
		volumes: volumes,
	}, nil
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int { return len(s.dates) }

// LastIndex returns the index of the most recent bar, or -1 when empty.
func (s *PriceSeries) LastIndex() int { return len(s.dates) - 1 }

// LastDate returns the date of the most recent bar, or "" when empty.
func (s *PriceSeries) LastDate() string {
	if len(s.dates) == 0 {
		return ""
	}
	return s.dates[len(s.dates)-1]
}

func (s *PriceSeries) Date(i int) string   { return s.dates[i] }
func (s *PriceSeries) Open(i int) float64  { return s.opens[i] }
func (s *PriceSeries) High(i int) float64  { return s.highs[i] }
func (s *PriceSeries) Low(i int) float64   { return s.lows[i] }
func (s *PriceSeries) Close(i int) float64 { return s.closes[i] }
func (s *PriceSeries) Volume(i int) int64  { return s.volumes[i] }

// At returns the full candle at index i.
func (s *PriceSeries) At(i int) Candle {
	return Candle{
		Date:   s.dates[i],
		Open:   s.opens[i],
		High:   s.highs[i],
		Low:    s.lows[i],
		Close:  s.closes[i],
		Volume: s.volumes[i],
	}
}
