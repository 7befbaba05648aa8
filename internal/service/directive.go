package service

import (
	"context"
	"fmt"

	"intraday-levels/config"
	"intraday-levels/internal/dto"
	"intraday-levels/internal/repository"
	"intraday-levels/internal/technical"
	"intraday-levels/pkg/logger"
)

const (
	biasEMAPeriod   = 21
	biasFetchLimit  = 50
	acceptanceTFMin = 15
)

// DirectiveService runs one full evaluation: locked levels, acceptance
// check, alignment gate, and the descriptive playbook.
type DirectiveService interface {
	Evaluate(ctx context.Context, symbol, exchange, sessionID string) (*dto.DirectiveResponse, error)
}

type directiveService struct {
	cfg          *config.Config
	log          *logger.Logger
	levelService LevelService
	candleRepo   repository.CandleRepository
}

func NewDirectiveService(
	cfg *config.Config,
	log *logger.Logger,
	levelService LevelService,
	candleRepo repository.CandleRepository,
) DirectiveService {
	return &directiveService{
		cfg:          cfg,
		log:          log,
		levelService: levelService,
		candleRepo:   candleRepo,
	}
}

func (s *directiveService) Evaluate(ctx context.Context, symbol, exchange, sessionID string) (*dto.DirectiveResponse, error) {
	sc, levels, err := s.levelService.GetLevels(ctx, symbol, exchange, sessionID)
	if err != nil {
		return nil, err
	}

	directive := technical.EvaluateTrade(technical.EvaluateInput{
		Price:        sc.Price,
		Levels:       levels,
		LockedCloses: lockedCloses(sc),
	}, s.tradeConfig())

	bias := s.preSessionBias(ctx, symbol, exchange)
	playbook := technical.BuildTradeLogicSummary(symbol, levels, bias)

	s.log.InfoContext(ctx, "Directive evaluated",
		logger.StringField("symbol", symbol),
		logger.StringField("session", sc.SessionID),
		logger.StringField("action", string(directive.Action)),
		logger.StringField("side", string(directive.Side)),
		logger.StringField("fail_reason", string(directive.FailReason)),
	)

	return &dto.DirectiveResponse{
		Symbol:    symbol,
		Session:   sc,
		Levels:    levels,
		Directive: directive,
		Playbook:  playbook,
	}, nil
}

// lockedCloses turns the post-lock 5m stream into 15m closes. Acceptance
// counts confirmation candles, not ticks, so the coarser closes are what
// the state machine sees.
func lockedCloses(sc dto.SessionContext) []float64 {
	bars := technical.Resample(sc.PostLockCandles, acceptanceTFMin)
	closes := make([]float64, 0, len(bars))
	for _, c := range bars {
		closes = append(closes, c.Close)
	}
	return closes
}

func (s *directiveService) tradeConfig() dto.TradeConfig {
	return dto.TradeConfig{
		ConfirmationMode: s.cfg.Trade.ConfirmationMode,
		AcceptanceCloses: s.cfg.Trade.AcceptanceCloses,
		IgnoreAlignment:  s.cfg.Trade.IgnoreAlignment,
		IgnoreStoch:      s.cfg.Trade.IgnoreStoch,
		StopRiskBps:      float64(s.cfg.Trade.StopRiskBps),
	}
}

// preSessionBias reads the 1h EMA lean. Any fetch problem degrades to
// neutral; the playbook is descriptive and must not block an evaluation.
func (s *directiveService) preSessionBias(ctx context.Context, symbol, exchange string) dto.Bias {
	candles, err := s.candleRepo.GetCandles(ctx, dto.GetCandlesParam{
		Symbol:   symbol,
		Exchange: exchange,
		Interval: dto.Interval1Hour,
		Limit:    biasFetchLimit,
	})
	if err != nil {
		s.log.WarnContext(ctx, fmt.Sprintf("Failed to fetch 1h candles for bias: %v", err),
			logger.StringField("symbol", symbol))
		return dto.BiasNeutral
	}
	return technical.BiasFromCloses(candles, biasEMAPeriod)
}
