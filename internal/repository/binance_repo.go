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

type BinanceRepository interface {
	GetKlines(ctx context.Context, symbol, interval string, limit int) ([]dto.Candle, error)
	GetLastPrice(ctx context.Context, symbol string) (float64, error)
}

type binanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewBinanceRepository(cfg *config.Config, log *logger.Logger) BinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Binance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &binanceRepository{
		httpClient:     httpclient.New(log, cfg.Binance.BaseURL, cfg.Binance.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *binanceRepository) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]dto.Candle, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/api/v3/klines"
	queryParams := map[string]string{
		"symbol":   symbol,
		"interval": interval,
		"limit":    strconv.Itoa(limit),
	}

	var klines [][]interface{}
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &klines)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch klines from binance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Binance API returned Non-OK status for klines",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("binance api returned status: %d", resp.StatusCode)
	}

	var result []dto.Candle
	for _, k := range klines {
		if len(k) < 6 {
			continue
		}
		openTime, _ := k[0].(float64)
		open, _ := strconv.ParseFloat(k[1].(string), 64)
		high, _ := strconv.ParseFloat(k[2].(string), 64)
		low, _ := strconv.ParseFloat(k[3].(string), 64)
		closePrice, _ := strconv.ParseFloat(k[4].(string), 64)
		volume, _ := strconv.ParseFloat(k[5].(string), 64)

		result = append(result, dto.Candle{
			Time:   int64(openTime) / 1000, // binance reports open time in ms
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}

	return result, nil
}

func (r *binanceRepository) GetLastPrice(ctx context.Context, symbol string) (float64, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return 0, err
	}

	endpoint := "/api/v3/ticker/price"
	queryParams := map[string]string{
		"symbol": symbol,
	}

	var respData map[string]string
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &respData)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch last price from binance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Binance API returned Non-OK status for price",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return 0, fmt.Errorf("binance api returned status: %d", resp.StatusCode)
	}

	price, err := strconv.ParseFloat(respData["price"], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price from binance: %w", err)
	}

	return price, nil
}
