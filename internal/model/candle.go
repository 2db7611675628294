package model

import "math"

// Candle is a single daily OHLCV bar.
type Candle struct {
	Date   string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Body returns the absolute size of the candle body.
func (c Candle) Body() float64 { return math.Abs(c.Close - c.Open) }

// UpperShadow returns the wick length above the body.
func (c Candle) UpperShadow() float64 { return c.High - math.Max(c.Open, c.Close) }

// LowerShadow returns the wick length below the body.
func (c Candle) LowerShadow() float64 { return math.Min(c.Open, c.Close) - c.Low }

// Range returns the full high-low extent of the bar.
func (c Candle) Range() float64 { return c.High - c.Low }

// BodyMidpoint returns the price halfway through the body.
func (c Candle) BodyMidpoint() float64 { return (c.Open + c.Close) / 2 }

// IsBullish reports whether the candle closed above its open.
func (c Candle) IsBullish() bool { return c.Close > c.Open }

// IsBearish reports whether the candle closed below its open.
func (c Candle) IsBearish() bool { return c.Close < c.Open }
