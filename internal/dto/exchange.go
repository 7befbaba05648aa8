package dto

// KucoinKlinesResponse wraps the /api/v1/market/candles payload. Each row is
// [time, open, close, high, low, volume, turnover] as strings, newest first.
type KucoinKlinesResponse struct {
	Code string     `json:"code"`
	Data [][]string `json:"data"`
}

type KucoinLevel1Response struct {
	Code string `json:"code"`
	Data struct {
		Price string `json:"price"`
		Time  int64  `json:"time"`
	} `json:"data"`
}
