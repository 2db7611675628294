// Package cuphandle detects the multi-week cup-and-handle accumulation
// pattern: a rounded base between two rims near the same price, a shallow
// low-volume handle, and a volume-backed breakout above handle resistance.
package cuphandle

// Config holds the geometric and volume gates for the cup, handle, and
// breakout stages. Durations are in bars, percents in whole points,
// ratios as plain fractions or multipliers.
type Config struct {
	MinCandles        int     `yaml:"min_candles"`         // shortest series worth searching
	MaxCupBars        int     `yaml:"max_cup_bars"`        // widest rim-to-rim span considered
	MinCupBars        int     `yaml:"min_cup_bars"`        // narrowest bottom-search window
	RimWindow         int     `yaml:"rim_window"`          // bars either side a left rim must dominate
	MinDepthPercent   float64 `yaml:"min_depth_percent"`   // cup depth below the left rim
	MaxDepthPercent   float64 `yaml:"max_depth_percent"`
	RimMatchPercent   float64 `yaml:"rim_match_percent"`   // right rim must land within this % of the left rim
	RimBreachRatio    float64 `yaml:"rim_breach_ratio"`    // interior high above rim*this voids the cup
	MinSymmetry       float64 `yaml:"min_symmetry"`        // right/left duration ratio bounds
	MaxSymmetry       float64 `yaml:"max_symmetry"`
	MinRightBars      int     `yaml:"min_right_bars"`      // rejects V-shaped recoveries
	HandleMinBars     int     `yaml:"handle_min_bars"`
	HandleMaxBars     int     `yaml:"handle_max_bars"`
	HandleHoldRatio   float64 `yaml:"handle_hold_ratio"`   // handle low keeps this share of cup height above the bottom
	HandleDeclineMax  float64 `yaml:"handle_decline_max"`  // fractional decline cap from handle-start close
	DriftRatio        float64 `yaml:"drift_ratio"`         // share of bar pairs stepping down for a drift handle
	FlagDeviationMax  float64 `yaml:"flag_deviation_max"`  // MAD cap as a fraction of channel width
	PennantSqueeze    float64 `yaml:"pennant_squeeze"`     // second-half range cap vs the first half
	VolumeDryUpRatio  float64 `yaml:"volume_dry_up_ratio"` // handle avg volume cap vs cup avg volume
	BreakoutMargin    float64 `yaml:"breakout_margin"`     // close must clear resistance*this
	BreakoutVolumeMul float64 `yaml:"breakout_volume_mul"` // breakout volume vs handle avg volume
	RecencyBars       int     `yaml:"recency_bars"`        // how fresh a breakout or handle must be to report
}

// DefaultConfig returns the standard gates.
func DefaultConfig() Config {
	return Config{
		MinCandles:        35,
		MaxCupBars:        300,
		MinCupBars:        30,
		RimWindow:         5,
		MinDepthPercent:   12,
		MaxDepthPercent:   35,
		RimMatchPercent:   3,
		RimBreachRatio:    1.02,
		MinSymmetry:       0.5,
		MaxSymmetry:       2.0,
		MinRightBars:      5,
		HandleMinBars:     5,
		HandleMaxBars:     25,
		HandleHoldRatio:   0.5,
		HandleDeclineMax:  0.15,
		DriftRatio:        0.6,
		FlagDeviationMax:  0.3,
		PennantSqueeze:    0.7,
		VolumeDryUpRatio:  0.7,
		BreakoutMargin:    1.01,
		BreakoutVolumeMul: 1.5,
		RecencyBars:       7,
	}
}
