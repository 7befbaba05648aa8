package dto

type Regime string

const (
	RegimePreBreakout Regime = "PRE_BREAKOUT"
	RegimeRange       Regime = "RANGE"
	RegimeTrend       Regime = "TREND"
)

type Bias string

const (
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
	BiasNeutral Bias = "NEUTRAL"
)

// StrategyDescriptor is one static playbook entry. The catalog never changes
// at runtime; regime and side only select which entries surface.
type StrategyDescriptor struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Side    Side   `json:"side"`
	Summary string `json:"summary"`
}

// TargetLadder hints at where a directional move could run based on the
// daily band and the nearest higher timeframe shelves.
type TargetLadder struct {
	PrimaryHTF    float64   `json:"primary_htf"`
	HTFExtensions []float64 `json:"htf_extensions"`
}

type TargetsHint struct {
	Long  *TargetLadder `json:"long"`
	Short *TargetLadder `json:"short"`
}

// TradeLogicSummary is the regime read plus the strategies it recommends.
// It is purely descriptive and never feeds back into the numeric levels.
type TradeLogicSummary struct {
	Regime    Regime               `json:"regime"`
	Bias      Bias                 `json:"bias"`
	FocusSide Side                 `json:"focus_side"`
	SpanRatio float64              `json:"span_ratio"`
	Primary   []StrategyDescriptor `json:"primary"`
	Secondary []StrategyDescriptor `json:"secondary"`
	Targets   TargetsHint          `json:"targets_hint"`
	Outlook   string               `json:"outlook"`
}
