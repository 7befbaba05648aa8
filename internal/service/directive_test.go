package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intraday-levels/config"
	"intraday-levels/internal/dto"
	"intraday-levels/pkg/logger"
)

type fakeLevelService struct {
	sc     dto.SessionContext
	levels dto.LevelSet
}

func (f *fakeLevelService) ListSessions(context.Context, time.Time) ([]dto.SessionSchedule, error) {
	return nil, nil
}

func (f *fakeLevelService) BuildSessionContext(context.Context, string, string, string) (dto.SessionContext, error) {
	return f.sc, nil
}

func (f *fakeLevelService) GetLevels(context.Context, string, string, string) (dto.SessionContext, dto.LevelSet, error) {
	return f.sc, f.levels, nil
}

func postLockBars(closes []float64) []dto.Candle {
	// One 15m bucket per close so the resampled acceptance series matches.
	out := make([]dto.Candle, len(closes))
	for i, c := range closes {
		out[i] = dto.Candle{
			Time: testOpen.Add(30*time.Minute).Unix() + int64(i*900),
			Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1,
		}
	}
	return out
}

func risingHourly(n int) []dto.Candle {
	out := make([]dto.Candle, n)
	for i := range out {
		p := 100.0 + float64(i)
		out[i] = dto.Candle{Time: int64(i * 3600), Open: p, High: p + 1, Low: p - 1, Close: p, Volume: 1}
	}
	return out
}

func newTestDirectiveService(levels *fakeLevelService, candles *fakeCandleRepo) DirectiveService {
	log, _ := logger.New("error", "console")
	cfg := &config.Config{
		Trade: config.Trade{AcceptanceCloses: 2, IgnoreAlignment: true, StopRiskBps: 120},
	}
	return NewDirectiveService(cfg, log, levels, candles)
}

func TestEvaluateExecutesOnAcceptedBreakout(t *testing.T) {
	levels := &fakeLevelService{
		sc: dto.SessionContext{
			SessionID:       "test_utc",
			DateKey:         "2026-08-21",
			Status:          dto.SessionActive,
			Price:           101,
			R30High:         98,
			R30Low:          94,
			PostLockCandles: postLockBars([]float64{100, 101}),
		},
		levels: dto.LevelSet{
			BreakoutTrigger: 99, BreakdownTrigger: 95,
			DailySupport: 90, DailyResistance: 110,
		},
	}
	candles := &fakeCandleRepo{candles: map[string][]dto.Candle{
		dto.Interval1Hour: risingHourly(40),
	}}

	svc := newTestDirectiveService(levels, candles)
	resp, err := svc.Evaluate(context.Background(), "BTCUSDT", "BINANCE", "test_utc")
	require.NoError(t, err)

	assert.Equal(t, dto.DirectiveExecute, resp.Directive.Action)
	assert.Equal(t, dto.SideLong, resp.Directive.Side)
	assert.InDelta(t, 99.788, resp.Directive.Stop, 1e-9)
	assert.Equal(t, dto.BiasBullish, resp.Playbook.Bias)
	assert.NotEmpty(t, resp.Playbook.Primary)
	assert.NotEmpty(t, resp.Playbook.Outlook)
}

func TestEvaluateHoldsFireWithoutLockedLevels(t *testing.T) {
	levels := &fakeLevelService{
		sc: dto.SessionContext{
			SessionID: "test_utc",
			Status:    dto.SessionCalibrating,
			Price:     101,
		},
	}
	candles := &fakeCandleRepo{candles: map[string][]dto.Candle{}}

	svc := newTestDirectiveService(levels, candles)
	resp, err := svc.Evaluate(context.Background(), "BTCUSDT", "BINANCE", "test_utc")
	require.NoError(t, err)

	assert.Equal(t, dto.DirectiveHoldFire, resp.Directive.Action)
	assert.Equal(t, dto.FailMissingData, resp.Directive.FailReason)
	assert.Equal(t, dto.SideNone, resp.Directive.Side)
}

func TestEvaluateInsufficientCloses(t *testing.T) {
	levels := &fakeLevelService{
		sc: dto.SessionContext{
			SessionID:       "test_utc",
			Status:          dto.SessionActive,
			Price:           101,
			PostLockCandles: postLockBars([]float64{101}),
		},
		levels: dto.LevelSet{BreakoutTrigger: 99, BreakdownTrigger: 95},
	}
	candles := &fakeCandleRepo{candles: map[string][]dto.Candle{}}

	svc := newTestDirectiveService(levels, candles)
	resp, err := svc.Evaluate(context.Background(), "BTCUSDT", "BINANCE", "test_utc")
	require.NoError(t, err)

	assert.Equal(t, dto.DirectiveHoldFire, resp.Directive.Action)
	assert.Equal(t, dto.FailInsufficientData, resp.Directive.FailReason)
}
