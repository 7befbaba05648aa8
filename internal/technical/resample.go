package technical

import "intraday-levels/internal/dto"

// Resample aggregates a time-sorted candle series into fixed bucketMinutes
// windows using standard OHLCV rules. Buckets appear in the order their
// first source candle appears, so sorted input yields sorted output. Empty
// input yields empty output.
func Resample(candles []dto.Candle, bucketMinutes int) []dto.Candle {
	if len(candles) == 0 || bucketMinutes <= 0 {
		return nil
	}

	bucketSec := int64(bucketMinutes) * 60
	idxByKey := make(map[int64]int, len(candles))
	out := make([]dto.Candle, 0, len(candles))

	for _, c := range candles {
		key := c.Time - c.Time%bucketSec
		i, ok := idxByKey[key]
		if !ok {
			idxByKey[key] = len(out)
			out = append(out, dto.Candle{
				Time:   key,
				Open:   c.Open,
				High:   c.High,
				Low:    c.Low,
				Close:  c.Close,
				Volume: c.Volume,
			})
			continue
		}
		b := &out[i]
		if c.High > b.High {
			b.High = c.High
		}
		if c.Low < b.Low {
			b.Low = c.Low
		}
		b.Close = c.Close
		b.Volume += c.Volume
	}
	return out
}
