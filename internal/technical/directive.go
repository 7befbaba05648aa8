package technical

import "intraday-levels/internal/dto"

const (
	// DefaultAcceptanceCloses is the trailing close count required before a
	// trigger break counts as accepted.
	DefaultAcceptanceCloses = 2

	// DefaultStopRiskBps is the stop distance in basis points of entry.
	DefaultStopRiskBps = 120.0
)

// targetStepsBps are the three profit targets, in basis points from entry.
var targetStepsBps = []float64{40, 80, 140}

// EvaluateInput is everything one directive evaluation looks at. Aligned is
// the external multi-timeframe alignment signal; nil means no signal was
// supplied this cycle.
type EvaluateInput struct {
	Price        float64
	Levels       dto.LevelSet
	LockedCloses []float64
	Aligned      *bool
}

// EvaluateTrade walks the directive state machine. Every path returns a
// fully populated result; business failures surface as FailReason values,
// never as errors.
func EvaluateTrade(in EvaluateInput, cfg dto.TradeConfig) dto.Directive {
	acceptance := cfg.AcceptanceCloses
	if acceptance < 1 {
		acceptance = DefaultAcceptanceCloses
	}
	stopBps := cfg.StopRiskBps
	if stopBps <= 0 {
		stopBps = DefaultStopRiskBps
	}

	if in.Price <= 0 || in.Levels.Empty() {
		return holdFire(dto.SideNone, dto.FailMissingData)
	}
	if len(in.LockedCloses) < acceptance {
		return holdFire(dto.SideNone, dto.FailInsufficientData)
	}

	tail := in.LockedCloses[len(in.LockedCloses)-acceptance:]
	side := dto.SideNone
	trigger := 0.0
	switch {
	case allAbove(tail, in.Levels.BreakoutTrigger):
		side = dto.SideLong
		trigger = in.Levels.BreakoutTrigger
	case allBelow(tail, in.Levels.BreakdownTrigger):
		side = dto.SideShort
		trigger = in.Levels.BreakdownTrigger
	default:
		return holdFire(dto.SideNone, dto.FailNoAcceptance)
	}

	if !cfg.IgnoreAlignment && (in.Aligned == nil || !*in.Aligned) {
		d := holdFire(side, dto.FailNoAlignment)
		d.Acceptance = true
		d.Trigger = trigger
		return d
	}

	stopDelta := in.Price * stopBps / 10000.0
	d := dto.Directive{
		Action:     dto.DirectiveExecute,
		Side:       side,
		Acceptance: true,
		Entry:      in.Price,
		TradeType:  dto.TradeTypeStructure,
		Trigger:    trigger,
		Targets:    make([]float64, 0, len(targetStepsBps)),
	}
	for _, bps := range targetStepsBps {
		step := in.Price * bps / 10000.0
		if side == dto.SideLong {
			d.Targets = append(d.Targets, in.Price+step)
		} else {
			d.Targets = append(d.Targets, in.Price-step)
		}
	}
	if side == dto.SideLong {
		d.Stop = in.Price - stopDelta
	} else {
		d.Stop = in.Price + stopDelta
	}
	return d
}

func holdFire(side dto.Side, reason dto.FailReason) dto.Directive {
	return dto.Directive{Action: dto.DirectiveHoldFire, Side: side, FailReason: reason}
}

func allAbove(closes []float64, level float64) bool {
	for _, c := range closes {
		if c <= level {
			return false
		}
	}
	return true
}

func allBelow(closes []float64, level float64) bool {
	for _, c := range closes {
		if c >= level {
			return false
		}
	}
	return true
}
