package technical

import (
	"sort"

	"intraday-levels/internal/dto"
)

const (
	// DefaultPivotWindow is the look-around span on each side of a candidate
	// pivot candle.
	DefaultPivotWindow = 3

	// MaxShelves bounds how many historical pivot levels the shelf ladder
	// keeps per side.
	MaxShelves = 5
)

// isPivotHigh checks the candle at i against left candles before and right
// candles after it. The leading side is strict and the trailing side allows
// equality, so a flat run of identical highs never confirms a pivot and a
// tie resolves toward the earlier candle. The low check is the mirror.
func isPivotHigh(candles []dto.Candle, i, left, right int) bool {
	h := candles[i].High
	for j := i - left; j < i; j++ {
		if candles[j].High >= h {
			return false
		}
	}
	for j := i + 1; j <= i+right; j++ {
		if candles[j].High > h {
			return false
		}
	}
	return true
}

func isPivotLow(candles []dto.Candle, i, left, right int) bool {
	l := candles[i].Low
	for j := i - left; j < i; j++ {
		if candles[j].Low <= l {
			return false
		}
	}
	for j := i + 1; j <= i+right; j++ {
		if candles[j].Low < l {
			return false
		}
	}
	return true
}

// LastPivots scans forward and returns the most recently confirmed pivot
// high (supply) and pivot low (demand). Zero means no pivot was confirmed,
// including when the series is shorter than left+right+1.
func LastPivots(candles []dto.Candle, left, right int) dto.PivotPair {
	if left < 1 {
		left = DefaultPivotWindow
	}
	if right < 1 {
		right = DefaultPivotWindow
	}

	var pair dto.PivotPair
	if len(candles) < left+right+1 {
		return pair
	}
	for i := left; i <= len(candles)-1-right; i++ {
		if isPivotHigh(candles, i, left, right) {
			pair.Supply = candles[i].High
		}
		if isPivotLow(candles, i, left, right) {
			pair.Demand = candles[i].Low
		}
	}
	return pair
}

// Shelves collects every confirmed pivot level in the series and keeps the
// five highest supply prices and the five lowest demand prices, each sorted
// ascending.
func Shelves(candles []dto.Candle, left, right int) (supply, demand []float64) {
	if left < 1 {
		left = DefaultPivotWindow
	}
	if right < 1 {
		right = DefaultPivotWindow
	}
	if len(candles) < left+right+1 {
		return nil, nil
	}

	for i := left; i <= len(candles)-1-right; i++ {
		if isPivotHigh(candles, i, left, right) {
			supply = append(supply, candles[i].High)
		}
		if isPivotLow(candles, i, left, right) {
			demand = append(demand, candles[i].Low)
		}
	}

	sort.Float64s(supply)
	sort.Float64s(demand)
	if len(supply) > MaxShelves {
		supply = supply[len(supply)-MaxShelves:]
	}
	if len(demand) > MaxShelves {
		demand = demand[:MaxShelves]
	}
	return supply, demand
}
