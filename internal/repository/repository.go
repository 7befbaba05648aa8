package repository

import (
	"gorm.io/gorm"

	"intraday-levels/config"
	"intraday-levels/pkg/cache"
	"intraday-levels/pkg/logger"
)

type Repository struct {
	BinanceRepo         BinanceRepository
	KucoinRepo          KucoinRepository
	CandleRepo          CandleRepository
	SessionScheduleRepo SessionScheduleRepository
	SessionLevelRepo    SessionLevelRepository
	GeminiAIRepo        AIRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger, inmemoryCache cache.Cache) (*Repository, error) {
	binanceRepo := NewBinanceRepository(cfg, log)
	kucoinRepo := NewKucoinRepository(cfg, log)

	// Narrative generation is optional; without a key every other surface
	// still works.
	var geminiAIRepo AIRepository
	if cfg.Gemini.APIKey != "" {
		var err error
		geminiAIRepo, err = NewGeminiAIRepository(cfg, log)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn("Gemini API key not configured, briefings disabled")
	}

	return &Repository{
		BinanceRepo:         binanceRepo,
		KucoinRepo:          kucoinRepo,
		CandleRepo:          NewCandleRepository(binanceRepo, kucoinRepo, inmemoryCache),
		SessionScheduleRepo: NewSessionScheduleRepository(cfg),
		SessionLevelRepo:    NewSessionLevelRepository(db),
		GeminiAIRepo:        geminiAIRepo,
	}, nil
}
