package repository

import (
	"context"
	"fmt"
	"time"

	"intraday-levels/internal/dto"
	"intraday-levels/pkg/cache"
	"intraday-levels/pkg/common"
)

// lastPriceTTL keeps ticker lookups from hammering the exchange when several
// evaluations run in the same scheduler tick.
const lastPriceTTL = 5 * time.Second

// CandleRepository routes candle and ticker fetches to the configured
// exchange. Binance is the default when no exchange is named.
type CandleRepository interface {
	GetCandles(ctx context.Context, param dto.GetCandlesParam) ([]dto.Candle, error)
	GetLastPrice(ctx context.Context, symbol, exchange string) (float64, error)
}

type candleRepository struct {
	binanceRepo BinanceRepository
	kucoinRepo  KucoinRepository
	cache       cache.Cache
}

func NewCandleRepository(binanceRepo BinanceRepository, kucoinRepo KucoinRepository, inmemoryCache cache.Cache) CandleRepository {
	return &candleRepository{
		binanceRepo: binanceRepo,
		kucoinRepo:  kucoinRepo,
		cache:       inmemoryCache,
	}
}

func (r *candleRepository) GetCandles(ctx context.Context, param dto.GetCandlesParam) ([]dto.Candle, error) {
	if param.Exchange == common.EXCHANGE_KUCOIN {
		return r.kucoinRepo.GetKlines(ctx, param.Symbol, param.Interval, param.Limit)
	}
	return r.binanceRepo.GetKlines(ctx, param.Symbol, param.Interval, param.Limit)
}

func (r *candleRepository) GetLastPrice(ctx context.Context, symbol, exchange string) (float64, error) {
	key := fmt.Sprintf(common.KEY_LAST_PRICE, symbol)
	if cached, ok := r.cache.Get(key); ok {
		if price, ok := cached.(float64); ok {
			return price, nil
		}
	}

	var (
		price float64
		err   error
	)
	if exchange == common.EXCHANGE_KUCOIN {
		price, err = r.kucoinRepo.GetLastPrice(ctx, symbol)
	} else {
		price, err = r.binanceRepo.GetLastPrice(ctx, symbol)
	}
	if err != nil {
		return 0, err
	}

	r.cache.Set(key, price, lastPriceTTL)
	return price, nil
}
