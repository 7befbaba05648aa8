package technical

import (
	"math"

	"intraday-levels/internal/dto"
)

const (
	// DefaultProfileBins is the histogram resolution when callers ask for a
	// fixed-bin profile.
	DefaultProfileBins = 200

	// DefaultBinPct sizes price-proportional bins at 0.1% of the range low,
	// with a floor of one price unit.
	DefaultBinPct = 0.001

	// ValueAreaPct is the share of total volume the value area must cover.
	ValueAreaPct = 0.70
)

// VolumeProfileFixedBins builds a profile with an explicit bin count.
func VolumeProfileFixedBins(candles []dto.Candle, nBins int) (dto.VolumeProfile, error) {
	if len(candles) == 0 {
		return dto.VolumeProfile{}, ErrEmptyInput
	}
	if nBins < 1 {
		nBins = DefaultProfileBins
	}

	lo, hi := priceRange(candles)
	if hi <= lo {
		return collapsedProfile(lo), nil
	}
	return buildProfile(candles, lo, hi, (hi-lo)/float64(nBins), nBins), nil
}

// VolumeProfilePctBins builds a profile whose bin width is a fraction of the
// range low, floored at one price unit. Coarser prices get coarser bins, so
// the profile granularity tracks the instrument instead of the sample size.
func VolumeProfilePctBins(candles []dto.Candle, binPct float64) (dto.VolumeProfile, error) {
	if len(candles) == 0 {
		return dto.VolumeProfile{}, ErrEmptyInput
	}
	if binPct <= 0 {
		binPct = DefaultBinPct
	}

	lo, hi := priceRange(candles)
	if hi <= lo {
		return collapsedProfile(lo), nil
	}

	width := math.Max(lo*binPct, 1.0)
	nBins := int((hi-lo)/width) + 1
	// Re-derive the width so the bins tile [lo, hi] exactly. A partial top
	// bin would put its center above the range high, breaking val<=poc<=vah.
	width = (hi - lo) / float64(nBins)
	return buildProfile(candles, lo, hi, width, nBins), nil
}

func priceRange(candles []dto.Candle) (lo, hi float64) {
	lo, hi = candles[0].Low, candles[0].High
	for _, c := range candles[1:] {
		if c.Low < lo {
			lo = c.Low
		}
		if c.High > hi {
			hi = c.High
		}
	}
	return lo, hi
}

func collapsedProfile(price float64) dto.VolumeProfile {
	return dto.VolumeProfile{POC: price, VAH: price, VAL: price}
}

func buildProfile(candles []dto.Candle, lo, hi, width float64, nBins int) dto.VolumeProfile {
	bins := make([]float64, nBins)
	totalVol := 0.0
	for _, c := range candles {
		if c.Volume <= 0 {
			continue
		}
		idx := int((c.TypicalPrice() - lo) / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= nBins {
			idx = nBins - 1
		}
		bins[idx] += c.Volume
		totalVol += c.Volume
	}
	if totalVol <= 0 {
		return collapsedProfile((lo + hi) / 2)
	}

	// First bin wins ties so repeated runs over the same data always pick
	// the same point of control.
	pocIdx := 0
	for i, v := range bins {
		if v > bins[pocIdx] {
			pocIdx = i
		}
	}

	loIdx, hiIdx := pocIdx, pocIdx
	acc := bins[pocIdx]
	target := totalVol * ValueAreaPct
	for acc < target {
		upVol, downVol := -1.0, -1.0
		if hiIdx+1 < nBins {
			upVol = bins[hiIdx+1]
		}
		if loIdx-1 >= 0 {
			downVol = bins[loIdx-1]
		}
		// Ties and empty neighbors stop expansion rather than guessing a
		// direction.
		switch {
		case upVol > downVol && upVol > 0:
			hiIdx++
			acc += upVol
		case downVol > upVol && downVol > 0:
			loIdx--
			acc += downVol
		default:
			acc = target
		}
	}

	return dto.VolumeProfile{
		POC: lo + (float64(pocIdx)+0.5)*width,
		VAH: math.Min(lo+float64(hiIdx+1)*width, hi),
		VAL: math.Max(lo+float64(loIdx)*width, lo),
	}
}
