package dto

type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
	SideNone  Side = "NONE"
)

type DirectiveAction string

const (
	DirectiveExecute  DirectiveAction = "EXECUTE"
	DirectiveHoldFire DirectiveAction = "HOLD FIRE"
)

type FailReason string

const (
	FailNone             FailReason = ""
	FailMissingData      FailReason = "MISSING_DATA"
	FailInsufficientData FailReason = "INSUFFICIENT_DATA"
	FailNoAcceptance     FailReason = "NO_ACCEPTANCE"
	FailNoAlignment      FailReason = "NO_ALIGNMENT"
)

type TradeType string

const (
	TradeTypeStructure TradeType = "STRUCTURE"
)

// TradeConfig tunes directive evaluation. Zero values are replaced by the
// documented defaults before evaluation.
type TradeConfig struct {
	ConfirmationMode string  `json:"confirmation_mode" mapstructure:"confirmation_mode"`
	AcceptanceCloses int     `json:"acceptance_closes" mapstructure:"acceptance_closes"`
	IgnoreAlignment  bool    `json:"ignore_alignment" mapstructure:"ignore_alignment"`
	IgnoreStoch      bool    `json:"ignore_stoch" mapstructure:"ignore_stoch"`
	StopRiskBps      float64 `json:"stop_risk_bps" mapstructure:"stop_risk_bps"`
}

// Directive is the always fully populated outcome of one trade evaluation.
// HOLD FIRE results carry a FailReason; EXECUTE results carry the full order
// plan. Acceptance reports that the trailing closes broke a trigger, and
// stays true even when the alignment gate then holds fire.
type Directive struct {
	Action     DirectiveAction `json:"action"`
	Side       Side            `json:"side"`
	Acceptance bool            `json:"acceptance"`
	FailReason FailReason      `json:"fail_reason,omitempty"`
	Entry      float64         `json:"entry,omitempty"`
	Stop       float64         `json:"stop,omitempty"`
	Targets    []float64       `json:"targets,omitempty"`
	TradeType  TradeType       `json:"trade_type,omitempty"`
	Trigger    float64         `json:"trigger,omitempty"`
	Note       string          `json:"note,omitempty"`
}
