package cuphandle

import (
	"PatternSentinel/internal/model"
)

// Detector runs the cup-and-handle search over a daily price series.
// It is stateless and safe for concurrent use.
type Detector struct {
	cfg Config
}

// NewDetector returns a detector using the given gates.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// cup is a fully qualified base: left rim, bottom, and right rim indices
// plus the depth of the bottom below the left rim in percent.
type cup struct {
	left   int
	bottom int
	right  int
	depth  float64
}

// Detect returns the most recent actionable cup-and-handle on the series,
// or nil when none qualifies. Left rims are tried newest first and the
// first candidate that survives every stage wins, so an older overlapping
// base never shadows a fresher one.
func (d *Detector) Detect(s *model.PriceSeries) *model.CupHandleRecord {
	n := s.Len()
	if n < d.cfg.MinCandles {
		return nil
	}
	lo := n - 1 - min(d.cfg.MaxCupBars, n-d.cfg.MinCandles)
	for left := n - d.cfg.MinCandles; left > lo; left-- {
		if !d.isLeftRim(s, left) {
			continue
		}
		if rec := d.searchFrom(s, left); rec != nil {
			return rec
		}
	}
	return nil
}

// isLeftRim reports whether bar i carries the highest high within
// RimWindow bars on both sides. Ties are allowed.
func (d *Detector) isLeftRim(s *model.PriceSeries, i int) bool {
	if i-d.cfg.RimWindow < 0 || i+d.cfg.RimWindow > s.LastIndex() {
		return false
	}
	h := s.High(i)
	for k := i - d.cfg.RimWindow; k <= i+d.cfg.RimWindow; k++ {
		if k != i && s.High(k) > h {
			return false
		}
	}
	return true
}

// searchFrom grows the bottom-search window forward from the left rim one
// bar at a time, tracking the running low. Each new bottom is qualified at
// most once: the right-rim and handle stages depend only on the rim and
// bottom positions, so a repeat attempt can never change the outcome.
func (d *Detector) searchFrom(s *model.PriceSeries, left int) *model.CupHandleRecord {
	n := s.Len()
	rim := s.High(left)
	if rim <= 0 {
		return nil
	}

	bottom := left
	for k := left + 1; k < left+d.cfg.MinCupBars-1 && k < n; k++ {
		if s.Low(k) < s.Low(bottom) {
			bottom = k
		}
	}

	tried := -1
	maxEnd := min(left+d.cfg.MaxCupBars, n)
	for cupEnd := left + d.cfg.MinCupBars; cupEnd <= maxEnd; cupEnd++ {
		if k := cupEnd - 1; s.Low(k) < s.Low(bottom) {
			bottom = k
		}
		if bottom == left || bottom == tried {
			continue
		}
		tried = bottom

		depth := (rim - s.Low(bottom)) / rim * 100
		if depth < d.cfg.MinDepthPercent || depth > d.cfg.MaxDepthPercent {
			continue
		}
		if rec := d.completeCup(s, cup{left: left, bottom: bottom, depth: depth}); rec != nil {
			return rec
		}
	}
	return nil
}

// completeCup locates the right rim for a rim/bottom pair and applies the
// cup-quality gates before handing off to the handle stage.
func (d *Detector) completeCup(s *model.PriceSeries, c cup) *model.CupHandleRecord {
	n := s.Len()
	rim := s.High(c.left)
	leftDur := c.bottom - c.left

	// The recovery may take up to three times the decline before the
	// symmetry gate has a say; it must also leave room for a handle.
	winEnd := min(c.bottom+3*leftDur, c.left+d.cfg.MaxCupBars, n-d.cfg.HandleMinBars)
	right, bestDev := -1, 0.0
	for j := c.bottom + d.cfg.MinRightBars; j < winEnd; j++ {
		dev := abs(s.High(j) - rim)
		if dev/rim*100 > d.cfg.RimMatchPercent {
			continue
		}
		if right < 0 || dev < bestDev {
			right, bestDev = j, dev
		}
	}
	if right < 0 {
		return nil
	}

	for k := c.left + 1; k < right; k++ {
		if s.High(k) > rim*d.cfg.RimBreachRatio {
			return nil
		}
	}

	rightDur := right - c.bottom
	sym := float64(rightDur) / float64(leftDur)
	if sym < d.cfg.MinSymmetry || sym > d.cfg.MaxSymmetry {
		return nil
	}
	if rightDur < d.cfg.MinRightBars {
		return nil
	}

	c.right = right
	h := d.findHandle(s, c)
	if h == nil {
		return nil
	}
	return d.resolve(s, c, h)
}

// resolve applies the recency gate and assembles the report record. A
// breakout consumes the pattern: once it is older than RecencyBars the
// candidate is dead and never reported as forming.
func (d *Detector) resolve(s *model.PriceSeries, c cup, h *handle) *model.CupHandleRecord {
	last := s.LastIndex()
	breakout := d.findBreakout(s, h)

	var (
		status       model.Status
		daysAgo      int
		breakoutDate *string
	)
	switch {
	case breakout >= 0:
		if last-breakout >= d.cfg.RecencyBars {
			return nil
		}
		status = model.StatusConfirmed
		daysAgo = last - breakout
		dt := s.Date(breakout)
		breakoutDate = &dt
	default:
		if last-h.end >= d.cfg.RecencyBars {
			return nil
		}
		status = model.StatusForming
		daysAgo = last - h.end
	}

	rim := s.High(c.left)
	target := rim * (1 + c.depth/100)
	risk := rim - h.low
	rr := 0.0
	if risk > 0 {
		rr = (target - rim) / risk
	}

	confidence := 75
	switch h.shape {
	case model.ShapeDrift:
		confidence = 87
	case model.ShapeFlag:
		confidence = 82
	case model.ShapePennant:
		confidence = 77
	}

	return &model.CupHandleRecord{
		Pattern:         model.PatternCupAndHandle,
		Signal:          model.SignalBullish,
		Status:          status,
		CupStartDate:    s.Date(c.left),
		CupEndDate:      s.Date(c.right),
		HandleStartDate: s.Date(h.start),
		BreakoutDate:    breakoutDate,
		RimPrice:        rim,
		CupBottomPrice:  s.Low(c.bottom),
		HandleLow:       h.low,
		DepthPercent:    c.depth,
		HandleShape:     h.shape,
		ProfitTarget:    target,
		RiskRewardRatio: rr,
		Confidence:      confidence,
		DaysAgo:         daysAgo,
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
