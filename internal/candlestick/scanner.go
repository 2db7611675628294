package candlestick

import (
	"sort"
	"time"

	"PatternSentinel/internal/model"
)

// scanWindow is how many trailing bars a scan covers. One extra bar beyond
// the window is required so the oldest scanned bar can still confirm.
const scanWindow = 7

// Scanner runs the detector over the trailing week of a series and resolves
// confirmation for each hit.
type Scanner struct {
	det *Detector
}

// NewScanner creates a Scanner around a detector.
func NewScanner(det *Detector) *Scanner {
	return &Scanner{det: det}
}

// ScanLastWeek evaluates the last seven bars of the series and returns the
// surviving records sorted by date ascending. Series shorter than eight bars
// yield an empty result. Only confirmed and pending records are kept; a
// detection whose confirmation fails outright is dropped.
func (sc *Scanner) ScanLastWeek(s *model.PriceSeries, atr float64) []model.PatternRecord {
	if s.Len() < scanWindow+1 {
		return nil
	}

	var records []model.PatternRecord
	for i := s.Len() - scanWindow; i < s.Len(); i++ {
		det := sc.det.DetectAt(s, i, atr)
		if det == nil {
			continue
		}
		status := Confirm(det.Signal, i, s)
		if status != model.StatusConfirmed && status != model.StatusPending {
			continue
		}
		records = append(records, model.PatternRecord{
			Date:       s.Date(i),
			DaysAgo:    daysAgo(s.Date(i), s.LastDate()),
			Pattern:    det.Pattern,
			Signal:     det.Signal,
			Confidence: det.Confidence,
			Status:     status,
		})
	}

	sort.SliceStable(records, func(a, b int) bool {
		return records[a].Date < records[b].Date
	})
	return records
}

// daysAgo returns the calendar-day distance from patternDate to lastDate.
// Unparseable dates count as 0, and the result never goes negative.
func daysAgo(patternDate, lastDate string) int {
	pd, err := time.Parse("2006-01-02", patternDate)
	if err != nil {
		return 0
	}
	ld, err := time.Parse("2006-01-02", lastDate)
	if err != nil {
		return 0
	}
	days := int(ld.Sub(pd).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
