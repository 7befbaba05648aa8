package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"intraday-levels/config"
	"intraday-levels/internal/dto"
	"intraday-levels/pkg/httpclient"
	"intraday-levels/pkg/logger"
)

// kucoinIntervals maps the engine's interval names onto Kucoin candle types.
var kucoinIntervals = map[string]string{
	dto.Interval5Min:   "5min",
	dto.Interval15Min:  "15min",
	dto.Interval30Min:  "30min",
	dto.Interval1Hour:  "1hour",
	dto.Interval4Hour:  "4hour",
	dto.Interval1Day:   "1day",
	dto.Interval1Week:  "1week",
	dto.Interval1Month: "1month",
}

type KucoinRepository interface {
	GetKlines(ctx context.Context, symbol, interval string, limit int) ([]dto.Candle, error)
	GetLastPrice(ctx context.Context, symbol string) (float64, error)
}

type kucoinRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewKucoinRepository(cfg *config.Config, log *logger.Logger) KucoinRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Kucoin.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &kucoinRepository{
		httpClient:     httpclient.New(log, cfg.Kucoin.BaseURL, cfg.Kucoin.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *kucoinRepository) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]dto.Candle, error) {
	candleType, ok := kucoinIntervals[interval]
	if !ok {
		return nil, fmt.Errorf("kucoin does not support interval %q", interval)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	intervalSec, err := intervalSeconds(interval)
	if err != nil {
		return nil, err
	}
	endAt := time.Now().Unix()
	startAt := endAt - int64(limit)*intervalSec

	endpoint := "/api/v1/market/candles"
	queryParams := map[string]string{
		"symbol":  symbol,
		"type":    candleType,
		"startAt": strconv.FormatInt(startAt, 10),
		"endAt":   strconv.FormatInt(endAt, 10),
	}

	var klines dto.KucoinKlinesResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &klines)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch klines from kucoin: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Kucoin API returned Non-OK status for klines",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("kucoin api returned status: %d", resp.StatusCode)
	}

	// Rows arrive newest first; reverse while decoding so callers always see
	// ascending time.
	result := make([]dto.Candle, 0, len(klines.Data))
	for i := len(klines.Data) - 1; i >= 0; i-- {
		row := klines.Data[i]
		if len(row) < 6 {
			continue
		}
		ts, _ := strconv.ParseInt(row[0], 10, 64)
		open, _ := strconv.ParseFloat(row[1], 64)
		closePrice, _ := strconv.ParseFloat(row[2], 64)
		high, _ := strconv.ParseFloat(row[3], 64)
		low, _ := strconv.ParseFloat(row[4], 64)
		volume, _ := strconv.ParseFloat(row[5], 64)

		result = append(result, dto.Candle{
			Time:   ts,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}

	return result, nil
}

func (r *kucoinRepository) GetLastPrice(ctx context.Context, symbol string) (float64, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return 0, err
	}

	endpoint := "/api/v1/market/orderbook/level1"
	queryParams := map[string]string{
		"symbol": symbol,
	}

	var respData dto.KucoinLevel1Response
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &respData)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch last price from kucoin: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Kucoin API returned Non-OK status for price",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return 0, fmt.Errorf("kucoin api returned status: %d", resp.StatusCode)
	}

	price, err := strconv.ParseFloat(respData.Data.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price from kucoin: %w", err)
	}

	return price, nil
}

func intervalSeconds(interval string) (int64, error) {
	switch interval {
	case dto.Interval5Min:
		return 5 * 60, nil
	case dto.Interval15Min:
		return 15 * 60, nil
	case dto.Interval30Min:
		return 30 * 60, nil
	case dto.Interval1Hour:
		return 3600, nil
	case dto.Interval4Hour:
		return 4 * 3600, nil
	case dto.Interval1Day:
		return 24 * 3600, nil
	case dto.Interval1Week:
		return 7 * 24 * 3600, nil
	case dto.Interval1Month:
		return 30 * 24 * 3600, nil
	default:
		return 0, fmt.Errorf("unknown interval %q", interval)
	}
}
