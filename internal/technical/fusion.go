package technical

import (
	"math"

	"intraday-levels/internal/dto"
)

const (
	// SnapTolerancePct is how close (relative) a volume level must sit to a
	// raw session extreme before the level replaces the extreme.
	SnapTolerancePct = 0.003

	// SafetyBufferPct keeps the fused triggers at least this far from the
	// current price, clamping inward snaps.
	SafetyBufferPct = 0.002

	// sourceBarsPerHour assumes a 15 minute source series.
	sourceBarsPerHour = 4
	fourHourBars      = 4 * sourceBarsPerHour
	dayBars           = 24 * sourceBarsPerHour
)

// FuseTriggers combines the 30 minute session range with the 4h and 24h
// volume profiles into final breakout and breakdown triggers.
//
// The 4h value area snaps a nearby session extreme onto an already accepted
// volume level. The 24h value area then dominates: price should not count as
// breaking out while still inside yesterday's value. The safety buffer runs
// last and always wins.
func FuseTriggers(px, r30High, r30Low float64, vp4h, vp24h dto.VolumeProfile) (breakout, breakdown float64) {
	boBase, bdBase := r30High, r30Low

	if vp4h.VAH > 0 && boBase > 0 && math.Abs(vp4h.VAH-boBase)/boBase <= SnapTolerancePct {
		boBase = vp4h.VAH
	}
	if vp4h.VAL > 0 && bdBase > 0 && math.Abs(vp4h.VAL-bdBase)/bdBase <= SnapTolerancePct {
		bdBase = vp4h.VAL
	}

	if vp24h.VAH > boBase {
		boBase = vp24h.VAH
	}
	if vp24h.VAL > 0 && vp24h.VAL < bdBase {
		bdBase = vp24h.VAL
	}

	breakout = math.Max(boBase, px*(1+SafetyBufferPct))
	breakdown = math.Min(bdBase, px*(1-SafetyBufferPct))
	return breakout, breakdown
}

// DailyBand derives daily support and resistance from structural pivots on
// the 4h resample, falling back to 1h pivots and finally to the raw extremes
// of the last 24 hours of source candles. Pivots persist across sessions, so
// they are preferred over raw extremes whenever one is confirmed. An empty
// source yields a zero band.
func DailyBand(source []dto.Candle) (support, resistance float64) {
	if len(source) == 0 {
		return 0, 0
	}

	p4 := LastPivots(Resample(source, 240), DefaultPivotWindow, DefaultPivotWindow)
	p1 := LastPivots(Resample(source, 60), DefaultPivotWindow, DefaultPivotWindow)

	resistance = p4.Supply
	if resistance == 0 {
		resistance = p1.Supply
	}
	support = p4.Demand
	if support == 0 {
		support = p1.Demand
	}

	if resistance == 0 || support == 0 {
		tail := source
		if len(tail) > dayBars {
			tail = tail[len(tail)-dayBars:]
		}
		rawLo, rawHi := priceRange(tail)
		if resistance == 0 {
			resistance = rawHi
		}
		if support == 0 {
			support = rawLo
		}
	}
	return support, resistance
}

// BuildLevelSet runs the full fusion over a 15 minute source series and the
// session's 30 minute calibration range. The result is the locked truth for
// the session; callers must not recompute or adjust individual fields.
func BuildLevelSet(px float64, r30 dto.Range30m, source []dto.Candle) (dto.LevelSet, error) {
	if len(source) == 0 {
		return dto.LevelSet{}, ErrEmptyInput
	}

	slice4h := source
	if len(slice4h) > fourHourBars {
		slice4h = slice4h[len(slice4h)-fourHourBars:]
	}
	slice24h := source
	if len(slice24h) > dayBars {
		slice24h = slice24h[len(slice24h)-dayBars:]
	}

	vp4h, err := VolumeProfilePctBins(slice4h, DefaultBinPct)
	if err != nil {
		return dto.LevelSet{}, err
	}
	vp24h, err := VolumeProfileFixedBins(slice24h, DefaultProfileBins)
	if err != nil {
		return dto.LevelSet{}, err
	}

	bo, bd := FuseTriggers(px, r30.High, r30.Low, vp4h, vp24h)
	ds, dr := DailyBand(source)

	return dto.LevelSet{
		DailySupport:     ds,
		DailyResistance:  dr,
		BreakoutTrigger:  bo,
		BreakdownTrigger: bd,
		Range30mHigh:     r30.High,
		Range30mLow:      r30.Low,
		F24VAH:           vp24h.VAH,
		F24VAL:           vp24h.VAL,
		F24POC:           vp24h.POC,
		HTFShelves:       buildShelves(source),
	}, nil
}

func buildShelves(source []dto.Candle) dto.HTFShelves {
	var out dto.HTFShelves
	for _, tf := range []struct {
		label   string
		minutes int
	}{
		{dto.Interval4Hour, 240},
		{dto.Interval1Hour, 60},
	} {
		supply, demand := Shelves(Resample(source, tf.minutes), DefaultPivotWindow, DefaultPivotWindow)
		for _, lvl := range supply {
			out.Resistance = append(out.Resistance, dto.Shelf{Level: lvl, Timeframe: tf.label})
		}
		for _, lvl := range demand {
			out.Support = append(out.Support, dto.Shelf{Level: lvl, Timeframe: tf.label})
		}
	}
	return out
}
