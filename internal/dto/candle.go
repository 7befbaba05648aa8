package dto

// Candle is a single OHLCV record. Time is unix seconds of the bar open.
// Sequences handed to the level engine are sorted ascending by Time and
// contain no duplicate timestamps.
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// TypicalPrice is the price a candle's volume is attributed to when building
// a volume profile.
func (c Candle) TypicalPrice() float64 {
	return (c.High + c.Low + c.Close) / 3.0
}

const (
	Interval5Min   string = "5m"
	Interval15Min  string = "15m"
	Interval30Min  string = "30m"
	Interval1Hour  string = "1h"
	Interval4Hour  string = "4h"
	Interval1Day   string = "1d"
	Interval1Week  string = "1w"
	Interval1Month string = "1M"
)

type GetCandlesParam struct {
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	Interval string `json:"interval"`
	Limit    int    `json:"limit"`
}

// SliceByTime returns the candles with fromTS <= time < toTS, preserving
// order. Inputs are assumed sorted, so a linear pass is fine at the sizes
// the engine works with (<= 1500 bars).
func SliceByTime(candles []Candle, fromTS, toTS int64) []Candle {
	var out []Candle
	for _, c := range candles {
		if c.Time >= fromTS && c.Time < toTS {
			out = append(out, c)
		}
	}
	return out
}
