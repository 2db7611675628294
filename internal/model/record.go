package model

import "time"

// PatternType names a detected formation.
type PatternType string

const (
	PatternHammer             PatternType = "hammer"
	PatternShootingStar       PatternType = "shooting_star"
	PatternBullishEngulfing   PatternType = "bullish_engulfing"
	PatternBearishEngulfing   PatternType = "bearish_engulfing"
	PatternMorningStar        PatternType = "morning_star"
	PatternEveningStar        PatternType = "evening_star"
	PatternThreeWhiteSoldiers PatternType = "three_white_soldiers"
	PatternThreeBlackCrows    PatternType = "three_black_crows"
	PatternCupAndHandle       PatternType = "cup_and_handle"
)

// Signal is the direction a pattern points.
type Signal string

const (
	SignalBullish Signal = "bullish"
	SignalBearish Signal = "bearish"
)

// Status describes how far a pattern has progressed past detection.
// Candlestick records are confirmed or pending; a cup and handle is
// confirmed once it breaks out, forming while the handle is still fresh.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusForming   Status = "forming"
)

// HandleShape classifies the consolidation after a cup's right rim.
type HandleShape string

const (
	ShapeDrift   HandleShape = "drift"
	ShapeFlag    HandleShape = "flag"
	ShapePennant HandleShape = "pennant"
)

// PatternRecord is one confirmed or pending candlestick finding.
type PatternRecord struct {
	Date       string      `json:"date"`
	DaysAgo    int         `json:"days_ago"`
	Pattern    PatternType `json:"pattern"`
	Signal     Signal      `json:"signal"`
	Confidence float64     `json:"confidence"`
	Status     Status      `json:"status"`
}

// CupHandleRecord is the persisted cup-and-handle finding. BreakoutDate is
// nil while the pattern is still forming.
type CupHandleRecord struct {
	Pattern         PatternType `json:"pattern"`
	Signal          Signal      `json:"signal"`
	HandleShape     HandleShape `json:"handle_shape"`
	CupStartDate    string      `json:"cup_start_date"`
	CupEndDate      string      `json:"cup_end_date"`
	HandleStartDate string      `json:"handle_start_date"`
	BreakoutDate    *string     `json:"breakout_date"`
	RimPrice        float64     `json:"rim_price"`
	CupBottomPrice  float64     `json:"cup_bottom_price"`
	HandleLow       float64     `json:"handle_low"`
	DepthPercent    float64     `json:"depth_percent"`
	ProfitTarget    float64     `json:"profit_target"`
	RiskRewardRatio float64     `json:"risk_reward_ratio"`
	Status          Status      `json:"status"`
	Confidence      int         `json:"confidence"`
	DaysAgo         int         `json:"days_ago"`
}

// Chart bundles one symbol's loaded series with its externally computed
// ATR(14). ATR is zero when the chart file does not carry one; classifiers
// that need it abstain in that case.
type Chart struct {
	Symbol string
	Series *PriceSeries
	ATR    float64
}

// SymbolReport collects everything found for one symbol in a single scan.
type SymbolReport struct {
	Symbol      string           `json:"symbol"`
	Candlestick []PatternRecord  `json:"candlestick_patterns"`
	CupHandle   *CupHandleRecord `json:"cup_and_handle"`
}

// ScanReport is the full output of one scan run across all symbols.
type ScanReport struct {
	GeneratedAt      time.Time      `json:"generated_at"`
	Scanned          int            `json:"scanned"`
	Skipped          int            `json:"skipped"`
	CandlestickTotal int            `json:"candlestick_total"`
	CupHandleTotal   int            `json:"cup_handle_total"`
	Symbols          []SymbolReport `json:"symbols"`
}
