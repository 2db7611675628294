package candlestick

import (
	"math"

	"PatternSentinel/internal/model"
)

// Detection is a raw classifier hit at a series index, before confirmation.
type Detection struct {
	Index      int
	Pattern    model.PatternType
	Signal     model.Signal
	Confidence float64
}

// Detector evaluates the eight candlestick classifiers. Every classifier is
// a pure predicate over the series: it either returns a Detection or nil,
// and abstains on insufficient history or degenerate input (zero range,
// missing ATR) rather than erroring.
type Detector struct {
	cfg Config
}

// NewDetector creates a Detector with the given thresholds.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// DetectAt runs every classifier at index i and resolves overlaps with a
// fixed priority: classifiers are tried lowest priority first and a later
// match replaces an earlier one, so three-candle formations outrank
// two-candle ones, which outrank single-candle ones.
func (d *Detector) DetectAt(s *model.PriceSeries, i int, atr float64) *Detection {
	var hit *Detection
	for _, classify := range []func(*model.PriceSeries, int, float64) *Detection{
		d.hammer,
		d.shootingStar,
		d.bullishEngulfing,
		d.bearishEngulfing,
		d.morningStar,
		d.eveningStar,
		d.threeWhiteSoldiers,
		d.threeBlackCrows,
	} {
		if det := classify(s, i, atr); det != nil {
			hit = det
		}
	}
	return hit
}

// hammer flags a long lower shadow with the body parked in the upper 30% of
// the day's range. The ATR gate filters insignificant bodies and guarantees
// a non-zero body before the confidence division.
func (d *Detector) hammer(s *model.PriceSeries, i int, atr float64) *Detection {
	if i < 0 || i > s.LastIndex() {
		return nil
	}
	c := s.At(i)
	body := c.Body()
	rng := c.Range()
	if rng == 0 || atr <= 0 {
		return nil
	}
	if c.LowerShadow() >= d.cfg.ShadowBodyRatio*body &&
		c.UpperShadow() <= d.cfg.OppositeShadowMax*body &&
		body >= d.cfg.BodyATRMin*atr &&
		(math.Max(c.Open, c.Close)-c.Low)/rng >= d.cfg.BodyPositionMin {
		conf := math.Round(math.Min(95, 60+c.LowerShadow()/body*10))
		return &Detection{Index: i, Pattern: model.PatternHammer, Signal: model.SignalBullish, Confidence: conf}
	}
	return nil
}

// shootingStar is the hammer mirrored: long upper shadow, body in the lower
// 30% of the range.
func (d *Detector) shootingStar(s *model.PriceSeries, i int, atr float64) *Detection {
	if i < 0 || i > s.LastIndex() {
		return nil
	}
	c := s.At(i)
	body := c.Body()
	rng := c.Range()
	if rng == 0 || atr <= 0 {
		return nil
	}
	if c.UpperShadow() >= d.cfg.ShadowBodyRatio*body &&
		c.LowerShadow() <= d.cfg.OppositeShadowMax*body &&
		body >= d.cfg.BodyATRMin*atr &&
		(c.High-math.Min(c.Open, c.Close))/rng >= d.cfg.BodyPositionMin {
		conf := math.Round(math.Min(95, 60+c.UpperShadow()/body*10))
		return &Detection{Index: i, Pattern: model.PatternShootingStar, Signal: model.SignalBearish, Confidence: conf}
	}
	return nil
}

// bullishEngulfing flags a bullish day 2 body that fully contains a bearish
// day 1 body. Rising volume adds a confidence boost.
func (d *Detector) bullishEngulfing(s *model.PriceSeries, i int, _ float64) *Detection {
	if i < 1 || i > s.LastIndex() {
		return nil
	}
	prev, cur := s.At(i-1), s.At(i)
	if prev.IsBearish() && cur.IsBullish() &&
		cur.Open < prev.Close && cur.Close > prev.Open {
		conf := 70.0
		if cur.Volume > prev.Volume {
			conf = 80.0
		}
		return &Detection{Index: i, Pattern: model.PatternBullishEngulfing, Signal: model.SignalBullish, Confidence: conf}
	}
	return nil
}

func (d *Detector) bearishEngulfing(s *model.PriceSeries, i int, _ float64) *Detection {
	if i < 1 || i > s.LastIndex() {
		return nil
	}
	prev, cur := s.At(i-1), s.At(i)
	if prev.IsBullish() && cur.IsBearish() &&
		cur.Open > prev.Close && cur.Close < prev.Open {
		conf := 70.0
		if cur.Volume > prev.Volume {
			conf = 80.0
		}
		return &Detection{Index: i, Pattern: model.PatternBearishEngulfing, Signal: model.SignalBearish, Confidence: conf}
	}
	return nil
}

// morningStar flags a long bearish day, a small body gapping below its
// close, then a long bullish day closing above day 1's midpoint.
func (d *Detector) morningStar(s *model.PriceSeries, i int, atr float64) *Detection {
	if i < 2 || i > s.LastIndex() {
		return nil
	}
	if atr <= 0 {
		return nil
	}
	d1, d2, d3 := s.At(i-2), s.At(i-1), s.At(i)
	if d1.IsBearish() && d1.Body() > d.cfg.StarBodyATRMin*atr &&
		d2.Body() < d.cfg.StarMidBodyMax*d1.Body() &&
		math.Max(d2.Open, d2.Close) < d1.Close &&
		d3.IsBullish() && d3.Body() > d.cfg.StarBodyATRMin*atr &&
		d3.Close > d1.BodyMidpoint() {
		return &Detection{Index: i, Pattern: model.PatternMorningStar, Signal: model.SignalBullish, Confidence: 75}
	}
	return nil
}

func (d *Detector) eveningStar(s *model.PriceSeries, i int, atr float64) *Detection {
	if i < 2 || i > s.LastIndex() {
		return nil
	}
	if atr <= 0 {
		return nil
	}
	d1, d2, d3 := s.At(i-2), s.At(i-1), s.At(i)
	if d1.IsBullish() && d1.Body() > d.cfg.StarBodyATRMin*atr &&
		d2.Body() < d.cfg.StarMidBodyMax*d1.Body() &&
		math.Min(d2.Open, d2.Close) > d1.Close &&
		d3.IsBearish() && d3.Body() > d.cfg.StarBodyATRMin*atr &&
		d3.Close < d1.BodyMidpoint() {
		return &Detection{Index: i, Pattern: model.PatternEveningStar, Signal: model.SignalBearish, Confidence: 75}
	}
	return nil
}

// threeWhiteSoldiers flags three bullish candles in a row, each closing
// near its high, each opening strictly inside the previous body, with
// strictly rising highs.
func (d *Detector) threeWhiteSoldiers(s *model.PriceSeries, i int, _ float64) *Detection {
	if i < 2 || i > s.LastIndex() {
		return nil
	}
	for k := i - 2; k <= i; k++ {
		c := s.At(k)
		if !c.IsBullish() {
			return nil
		}
		if rng := c.Range(); rng > 0 && c.UpperShadow()/rng > d.cfg.RunShadowMax {
			return nil
		}
	}
	for k := i - 1; k <= i; k++ {
		prev := s.At(k - 1)
		if s.Open(k) <= prev.Open || s.Open(k) >= prev.Close {
			return nil
		}
	}
	if !(s.High(i-2) < s.High(i-1) && s.High(i-1) < s.High(i)) {
		return nil
	}
	return &Detection{Index: i, Pattern: model.PatternThreeWhiteSoldiers, Signal: model.SignalBullish, Confidence: 80}
}

func (d *Detector) threeBlackCrows(s *model.PriceSeries, i int, _ float64) *Detection {
	if i < 2 || i > s.LastIndex() {
		return nil
	}
	for k := i - 2; k <= i; k++ {
		c := s.At(k)
		if !c.IsBearish() {
			return nil
		}
		if rng := c.Range(); rng > 0 && c.LowerShadow()/rng > d.cfg.RunShadowMax {
			return nil
		}
	}
	for k := i - 1; k <= i; k++ {
		prev := s.At(k - 1)
		if s.Open(k) >= prev.Open || s.Open(k) <= prev.Close {
			return nil
		}
	}
	if !(s.Low(i-2) > s.Low(i-1) && s.Low(i-1) > s.Low(i)) {
		return nil
	}
	return &Detection{Index: i, Pattern: model.PatternThreeBlackCrows, Signal: model.SignalBearish, Confidence: 80}
}
