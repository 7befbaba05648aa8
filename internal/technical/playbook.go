package technical

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"intraday-levels/internal/dto"
)

const (
	// Regime thresholds on span_ratio = trigger span / daily band width.
	preBreakoutMaxRatio = 0.35
	rangeMinRatio       = 0.7

	spanEpsilon = 1e-6

	// maxHTFExtensions bounds how many shelf levels a target ladder lists.
	maxHTFExtensions = 2
)

// strategyCatalog is static. Keys are id plus side so directional variants
// of the same setup stay distinct entries.
var strategyCatalog = map[string]dto.StrategyDescriptor{
	"S0_long": {
		ID: "S0", Name: "Trigger Pullback - Long", Side: dto.SideLong,
		Summary: "Use two 15m closes above the breakout trigger to establish a long bias; enter on 5m pullbacks toward the 21 EMA with trend alignment to the 200 EMA.",
	},
	"S0_short": {
		ID: "S0", Name: "Trigger Pullback - Short", Side: dto.SideShort,
		Summary: "Use two 15m closes below the breakdown trigger to establish a short bias; enter on 5m pullbacks toward the 21 EMA with trend aligned below the 200 EMA.",
	},
	"S1_long": {
		ID: "S1", Name: "Pocket Compression - Long", Side: dto.SideLong,
		Summary: "Longs from compression pockets between breakdown trigger and daily support, once downside fails and 15m reclaims the trigger.",
	},
	"S1_short": {
		ID: "S1", Name: "Pocket Compression - Short", Side: dto.SideShort,
		Summary: "Shorts from compression pockets between breakout trigger and daily resistance, once upside fails and 15m loses the trigger.",
	},
	"S2_long": {
		ID: "S2", Name: "Trigger Shadow - Long", Side: dto.SideLong,
		Summary: "Fade failed breakdowns where price sweeps below breakdown trigger and reclaims it; target a squeeze back toward breakout trigger and daily resistance.",
	},
	"S2_short": {
		ID: "S2", Name: "Trigger Shadow - Short", Side: dto.SideShort,
		Summary: "Fade failed breakouts where price wicks above breakout trigger and falls back inside; target a rotation back toward breakdown trigger and daily support.",
	},
	"S3_long": {
		ID: "S3", Name: "HTF Shelf Stepping - Long", Side: dto.SideLong,
		Summary: "Use stacked HTF demand shelves below daily support as step-in zones when trend is up but the morning drives price into deeper support.",
	},
	"S3_short": {
		ID: "S3", Name: "HTF Shelf Stepping - Short", Side: dto.SideShort,
		Summary: "Use stacked HTF supply shelves above daily resistance as step-in zones when trend is down but the morning pushes into overhead supply.",
	},
	"S4_neutral": {
		ID: "S4", Name: "Mid-Band Fade", Side: dto.SideNone,
		Summary: "Fade pushes away from the daily mid-band back toward value when both triggers sit deep inside the daily range and HTF shelves are balanced.",
	},
	"S5_neutral": {
		ID: "S5", Name: "Range Extremes", Side: dto.SideNone,
		Summary: "Fade touches of daily support and resistance in clean range conditions when triggers are wide and value remains centered.",
	},
	"S6_neutral": {
		ID: "S6", Name: "Value Rotation", Side: dto.SideNone,
		Summary: "Trade rotations from VAH back to VAL and back when 24h value is balanced and HTF shelves are not dominant.",
	},
	"S7_long": {
		ID: "S7", Name: "Range to Trigger - Long", Side: dto.SideLong,
		Summary: "Use intraday range edges and value to join a developing long trend toward the breakout trigger once shorts fail to push away from daily support.",
	},
	"S7_short": {
		ID: "S7", Name: "Range to Trigger - Short", Side: dto.SideShort,
		Summary: "Use intraday range edges and value to join a developing short trend toward the breakdown trigger once longs fail to push away from daily resistance.",
	},
	"S8_long": {
		ID: "S8", Name: "HTF Magnet - Long", Side: dto.SideLong,
		Summary: "Treat a strong HTF demand shelf as a magnet and look for 5m confirmation signals when price approaches from above in an otherwise bullish environment.",
	},
	"S8_short": {
		ID: "S8", Name: "HTF Magnet - Short", Side: dto.SideShort,
		Summary: "Treat a strong HTF supply shelf as a magnet and look for 5m confirmation signals when price approaches from below in an otherwise bearish environment.",
	},
}

// ClassifyRegime reads the trigger span against the daily band. Compressed
// triggers mean a break is still brewing; very wide triggers mean the day is
// likely to rotate inside them.
func ClassifyRegime(levels dto.LevelSet) (dto.Regime, float64) {
	bandWidth := math.Max(levels.DailyResistance-levels.DailySupport, spanEpsilon)
	triggerSpan := math.Max(levels.BreakoutTrigger-levels.BreakdownTrigger, 0)
	spanRatio := triggerSpan / bandWidth

	switch {
	case spanRatio < preBreakoutMaxRatio:
		return dto.RegimePreBreakout, spanRatio
	case spanRatio > rangeMinRatio:
		return dto.RegimeRange, spanRatio
	default:
		return dto.RegimeTrend, spanRatio
	}
}

func focusSide(bias dto.Bias) dto.Side {
	switch bias {
	case dto.BiasBullish:
		return dto.SideLong
	case dto.BiasBearish:
		return dto.SideShort
	default:
		return dto.SideNone
	}
}

func pickStrategyKeys(regime dto.Regime, side dto.Side) (primary, secondary []string) {
	switch regime {
	case dto.RegimeTrend:
		switch side {
		case dto.SideLong:
			return []string{"S0_long", "S7_long"}, []string{"S1_long", "S2_long", "S3_long", "S8_long"}
		case dto.SideShort:
			return []string{"S0_short", "S7_short"}, []string{"S1_short", "S2_short", "S3_short", "S8_short"}
		default:
			return []string{"S4_neutral"}, []string{"S5_neutral", "S6_neutral"}
		}
	case dto.RegimeRange:
		return []string{"S5_neutral"}, []string{"S4_neutral", "S6_neutral"}
	default: // pre-breakout
		switch side {
		case dto.SideLong:
			return []string{"S7_long", "S0_long"}, []string{"S1_long", "S2_long", "S5_neutral"}
		case dto.SideShort:
			return []string{"S7_short", "S0_short"}, []string{"S1_short", "S2_short", "S5_neutral"}
		default:
			return []string{"S4_neutral"}, []string{"S5_neutral", "S6_neutral"}
		}
	}
}

func resolveStrategies(keys []string) []dto.StrategyDescriptor {
	out := make([]dto.StrategyDescriptor, 0, len(keys))
	for _, k := range keys {
		if s, ok := strategyCatalog[k]; ok {
			out = append(out, s)
		}
	}
	return out
}

func buildTargetsHint(levels dto.LevelSet) dto.TargetsHint {
	pickClosest := func(shelves []dto.Shelf, base float64) []float64 {
		lvls := make([]float64, 0, len(shelves))
		for _, s := range shelves {
			lvls = append(lvls, s.Level)
		}
		sort.Slice(lvls, func(i, j int) bool {
			return math.Abs(lvls[i]-base) < math.Abs(lvls[j]-base)
		})
		if len(lvls) > maxHTFExtensions {
			lvls = lvls[:maxHTFExtensions]
		}
		return lvls
	}

	var hint dto.TargetsHint
	if levels.DailyResistance > 0 {
		hint.Long = &dto.TargetLadder{
			PrimaryHTF:    levels.DailyResistance,
			HTFExtensions: pickClosest(levels.HTFShelves.Resistance, levels.DailyResistance),
		}
	}
	if levels.DailySupport > 0 {
		hint.Short = &dto.TargetLadder{
			PrimaryHTF:    levels.DailySupport,
			HTFExtensions: pickClosest(levels.HTFShelves.Support, levels.DailySupport),
		}
	}
	return hint
}

func buildOutlook(symbol string, regime dto.Regime, side dto.Side, primary, secondary []dto.StrategyDescriptor) string {
	var lines []string

	switch side {
	case dto.SideLong:
		lines = append(lines, fmt.Sprintf("Primary idea: favor long setups in %s, treating dips as opportunities to join strength as long as the structural anchors remain intact.", symbol))
	case dto.SideShort:
		lines = append(lines, fmt.Sprintf("Primary idea: favor short setups in %s, selling rips back into resistance while the downside structure remains valid.", symbol))
	default:
		lines = append(lines, fmt.Sprintf("Primary idea: treat %s as a rotation environment until a clear break of the triggers forces a new trend.", symbol))
	}

	switch regime {
	case dto.RegimeTrend:
		lines = append(lines, "Regime: trend. Expect directional follow-through once triggers confirm; be careful fading strength or weakness.")
	case dto.RegimeRange:
		lines = append(lines, "Regime: range. Expect repeated tests of daily support, resistance and value edges; mean-reversion tactics take priority over chasing breakouts.")
	default:
		lines = append(lines, "Regime: pre-breakout. Triggers are compressed; expect fake-outs and liquidity hunts around both sides before a sustained move.")
	}

	if names := strategyNames(primary); names != "" {
		lines = append(lines, "Primary playbook: "+names+".")
	}
	if names := strategyNames(secondary); names != "" {
		lines = append(lines, "Secondary plays: "+names+".")
	}

	lines = append(lines, "All entries still require the intraday checklist: 15m trigger confirmation plus 5m trend alignment.")
	return strings.Join(lines, "\n")
}

func strategyNames(strats []dto.StrategyDescriptor) string {
	names := make([]string, 0, len(strats))
	for _, s := range strats {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

// BuildTradeLogicSummary maps the locked levels and a pre-session bias into
// the day's playbook. It only reads the levels; it never adjusts them.
func BuildTradeLogicSummary(symbol string, levels dto.LevelSet, bias dto.Bias) dto.TradeLogicSummary {
	regime, spanRatio := ClassifyRegime(levels)
	side := focusSide(bias)
	primaryKeys, secondaryKeys := pickStrategyKeys(regime, side)

	primary := resolveStrategies(primaryKeys)
	secondary := resolveStrategies(secondaryKeys)

	return dto.TradeLogicSummary{
		Regime:    regime,
		Bias:      bias,
		FocusSide: side,
		SpanRatio: spanRatio,
		Primary:   primary,
		Secondary: secondary,
		Targets:   buildTargetsHint(levels),
		Outlook:   buildOutlook(symbol, regime, side, primary, secondary),
	}
}
