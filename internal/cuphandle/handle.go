package cuphandle

import (
	"PatternSentinel/internal/model"
)

// handle is a qualified consolidation window starting at the right rim.
type handle struct {
	start      int
	end        int
	shape      model.HandleShape
	low        float64
	resistance float64
	avgVolume  float64
}

// findHandle walks candidate end bars outward from the right rim and
// returns the first window that passes the position, shape, and volume
// gates. The window is inclusive on both sides and anchored at the rim.
func (d *Detector) findHandle(s *model.PriceSeries, c cup) *handle {
	n := s.Len()
	start := c.right
	startClose := s.Close(start)
	if startClose <= 0 {
		return nil
	}
	rim := s.High(c.left)
	bottomPrice := s.Low(c.bottom)
	cupVol := avgVolume(s, c.left, c.right)

	for end := start + d.cfg.HandleMinBars; end <= start+d.cfg.HandleMaxBars && end < n; end++ {
		low := lowestLow(s, start, end)
		if low <= bottomPrice {
			continue
		}
		if low-bottomPrice < d.cfg.HandleHoldRatio*(rim-bottomPrice) {
			continue
		}
		if (startClose-low)/startClose > d.cfg.HandleDeclineMax {
			continue
		}
		shape, ok := d.classifyShape(s, start, end)
		if !ok {
			continue
		}
		vol := avgVolume(s, start, end)
		if vol > d.cfg.VolumeDryUpRatio*cupVol {
			continue
		}
		return &handle{
			start:      start,
			end:        end,
			shape:      shape,
			low:        low,
			resistance: highestHigh(s, start, end),
			avgVolume:  vol,
		}
	}
	return nil
}

// classifyShape tries drift, then flag, then pennant; the first match
// wins. A window matching none of the three is not a handle.
func (d *Detector) classifyShape(s *model.PriceSeries, start, end int) (model.HandleShape, bool) {
	switch {
	case d.isDrift(s, start, end):
		return model.ShapeDrift, true
	case d.isFlag(s, start, end):
		return model.ShapeFlag, true
	case d.isPennant(s, start, end):
		return model.ShapePennant, true
	}
	return "", false
}

// isDrift reports a gentle downward slide: most consecutive bar pairs
// print a lower high or a lower low.
func (d *Detector) isDrift(s *model.PriceSeries, start, end int) bool {
	down := 0
	for k := start + 1; k <= end; k++ {
		if s.High(k) < s.High(k-1) || s.Low(k) < s.Low(k-1) {
			down++
		}
	}
	return float64(down)/float64(end-start) >= d.cfg.DriftRatio
}

// isFlag reports a parallel channel: highs and lows each hug their mean,
// measured by mean absolute deviation against the channel width.
func (d *Detector) isFlag(s *model.PriceSeries, start, end int) bool {
	count := float64(end - start + 1)
	var sumHigh, sumLow float64
	for k := start; k <= end; k++ {
		sumHigh += s.High(k)
		sumLow += s.Low(k)
	}
	meanHigh, meanLow := sumHigh/count, sumLow/count
	width := meanHigh - meanLow
	if width <= 0 {
		return false
	}
	var madHigh, madLow float64
	for k := start; k <= end; k++ {
		madHigh += abs(s.High(k) - meanHigh)
		madLow += abs(s.Low(k) - meanLow)
	}
	madHigh /= count
	madLow /= count
	return madHigh < d.cfg.FlagDeviationMax*width && madLow < d.cfg.FlagDeviationMax*width
}

// isPennant reports a contraction: the second half of the window trades
// in a clearly tighter band than the first half.
func (d *Detector) isPennant(s *model.PriceSeries, start, end int) bool {
	mid := start + (end-start+1)/2
	if mid <= start || mid > end {
		return false
	}
	first := highestHigh(s, start, mid-1) - lowestLow(s, start, mid-1)
	if first <= 0 {
		return false
	}
	second := highestHigh(s, mid, end) - lowestLow(s, mid, end)
	return second < d.cfg.PennantSqueeze*first
}

// findBreakout returns the first bar after the handle that closes above
// resistance with expanded volume, or -1 when none has printed yet.
func (d *Detector) findBreakout(s *model.PriceSeries, h *handle) int {
	for k := h.end + 1; k < s.Len(); k++ {
		if s.Close(k) >= h.resistance*d.cfg.BreakoutMargin &&
			float64(s.Volume(k)) >= d.cfg.BreakoutVolumeMul*h.avgVolume {
			return k
		}
	}
	return -1
}

func lowestLow(s *model.PriceSeries, a, b int) float64 {
	low := s.Low(a)
	for k := a + 1; k <= b; k++ {
		if s.Low(k) < low {
			low = s.Low(k)
		}
	}
	return low
}

func highestHigh(s *model.PriceSeries, a, b int) float64 {
	high := s.High(a)
	for k := a + 1; k <= b; k++ {
		if s.High(k) > high {
			high = s.High(k)
		}
	}
	return high
}

func avgVolume(s *model.PriceSeries, a, b int) float64 {
	var sum int64
	for k := a; k <= b; k++ {
		sum += s.Volume(k)
	}
	return float64(sum) / float64(b-a+1)
}
