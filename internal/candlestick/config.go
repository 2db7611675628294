// Package candlestick detects single-, two-, and three-candle reversal and
// continuation formations and resolves their confirmation status.
package candlestick

// Config holds the geometric thresholds shared by the classifiers. Values
// are ratios against the candle body, the day's range, or the externally
// supplied ATR.
type Config struct {
	ShadowBodyRatio   float64 `yaml:"shadow_body_ratio"`   // dominant shadow must reach this multiple of the body
	OppositeShadowMax float64 `yaml:"opposite_shadow_max"` // opposite shadow capped at this fraction of the body
	BodyATRMin        float64 `yaml:"body_atr_min"`        // hammer/star body must reach this fraction of ATR
	BodyPositionMin   float64 `yaml:"body_position_min"`   // body must sit in this outer fraction of the range
	StarBodyATRMin    float64 `yaml:"star_body_atr_min"`   // flanking star bodies must exceed this fraction of ATR
	StarMidBodyMax    float64 `yaml:"star_mid_body_max"`   // middle star body capped at this fraction of day 1's
	RunShadowMax      float64 `yaml:"run_shadow_max"`      // soldiers/crows: trailing shadow share of range cap
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		ShadowBodyRatio:   2.0,
		OppositeShadowMax: 0.1,
		BodyATRMin:        0.3,
		BodyPositionMin:   0.7,
		StarBodyATRMin:    0.7,
		StarMidBodyMax:    0.3,
		RunShadowMax:      0.2,
	}
}
