package technical

import "intraday-levels/internal/dto"

// biasLeanPct is how far the last close must sit from the EMA before the
// lean counts as directional rather than noise.
const biasLeanPct = 0.001

// EMA computes an exponential moving average over values. The first period
// values seed with a simple average; output is aligned with the input and
// zero-filled before the seed completes.
func EMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period < 1 || len(values) < period {
		return out
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	prev := sum / float64(period)
	out[period-1] = prev

	k := 2.0 / (float64(period) + 1.0)
	for i := period; i < len(values); i++ {
		prev = values[i]*k + prev*(1-k)
		out[i] = prev
	}
	return out
}

// BiasFromCloses reads the pre-session lean of a series as its last close
// against the period EMA. Too little data or a close hugging the EMA both
// come back neutral.
func BiasFromCloses(candles []dto.Candle, period int) dto.Bias {
	if len(candles) < period || period < 1 {
		return dto.BiasNeutral
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	ema := EMA(closes, period)

	last := closes[len(closes)-1]
	ref := ema[len(ema)-1]
	if ref <= 0 {
		return dto.BiasNeutral
	}

	switch lean := (last - ref) / ref; {
	case lean > biasLeanPct:
		return dto.BiasBullish
	case lean < -biasLeanPct:
		return dto.BiasBearish
	default:
		return dto.BiasNeutral
	}
}
