package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"intraday-levels/config"
	"intraday-levels/internal/dto"
	"intraday-levels/internal/model"
	"intraday-levels/internal/repository"
	"intraday-levels/internal/technical"
	"intraday-levels/pkg/cache"
	"intraday-levels/pkg/common"
	"intraday-levels/pkg/logger"
)

const (
	// minCalibrationCandles is how many 5m bars the 30 minute calibration
	// window must produce before the levels can lock.
	minCalibrationCandles = 6

	fiveMinFetchLimit = 600 // ~50h of 5m bars
	sourceFetchLimit  = 500 // ~5 days of 15m bars
)

// LevelService builds session contexts and the locked level set for a
// symbol. Levels are computed once per symbol/session/day, then served from
// cache and the database for the rest of the session.
type LevelService interface {
	ListSessions(ctx context.Context, now time.Time) ([]dto.SessionSchedule, error)
	BuildSessionContext(ctx context.Context, symbol, exchange, sessionID string) (dto.SessionContext, error)
	GetLevels(ctx context.Context, symbol, exchange, sessionID string) (dto.SessionContext, dto.LevelSet, error)
}

type levelService struct {
	cfg              *config.Config
	log              *logger.Logger
	candleRepo       repository.CandleRepository
	scheduleRepo     repository.SessionScheduleRepository
	sessionLevelRepo repository.SessionLevelRepository
	cache            cache.Cache
	now              func() time.Time
}

func NewLevelService(
	cfg *config.Config,
	log *logger.Logger,
	candleRepo repository.CandleRepository,
	scheduleRepo repository.SessionScheduleRepository,
	sessionLevelRepo repository.SessionLevelRepository,
	inmemoryCache cache.Cache,
) LevelService {
	return &levelService{
		cfg:              cfg,
		log:              log,
		candleRepo:       candleRepo,
		scheduleRepo:     scheduleRepo,
		sessionLevelRepo: sessionLevelRepo,
		cache:            inmemoryCache,
		now:              time.Now,
	}
}

func (s *levelService) ListSessions(ctx context.Context, now time.Time) ([]dto.SessionSchedule, error) {
	return s.scheduleRepo.List(now)
}

// resolveSchedule picks an explicit session, or the most useful one when the
// caller does not name any: a live session first, otherwise the most
// recently opened one.
func (s *levelService) resolveSchedule(sessionID string, now time.Time) (dto.SessionSchedule, error) {
	if sessionID != "" {
		return s.scheduleRepo.Resolve(sessionID, now)
	}

	all, err := s.scheduleRepo.List(now)
	if err != nil {
		return dto.SessionSchedule{}, err
	}
	if len(all) == 0 {
		return dto.SessionSchedule{}, fmt.Errorf("no sessions configured")
	}

	best := all[0]
	for _, sched := range all[1:] {
		liveBest := best.Status(now) == dto.SessionActive || best.Status(now) == dto.SessionCalibrating
		liveCur := sched.Status(now) == dto.SessionActive || sched.Status(now) == dto.SessionCalibrating
		switch {
		case liveCur && !liveBest:
			best = sched
		case liveCur == liveBest && sched.StartTS.After(best.StartTS):
			best = sched
		}
	}
	return best, nil
}

func (s *levelService) BuildSessionContext(ctx context.Context, symbol, exchange, sessionID string) (dto.SessionContext, error) {
	now := s.now()

	schedule, err := s.resolveSchedule(sessionID, now)
	if err != nil {
		return dto.SessionContext{}, err
	}

	price, err := s.candleRepo.GetLastPrice(ctx, symbol, exchange)
	if err != nil {
		return dto.SessionContext{}, fmt.Errorf("failed to get last price for %s: %w", symbol, err)
	}

	candles5m, err := s.candleRepo.GetCandles(ctx, dto.GetCandlesParam{
		Symbol:   symbol,
		Exchange: exchange,
		Interval: dto.Interval5Min,
		Limit:    fiveMinFetchLimit,
	})
	if err != nil {
		return dto.SessionContext{}, fmt.Errorf("failed to get 5m candles for %s: %w", symbol, err)
	}

	anchorTS := schedule.StartTS.Unix()
	lockEndTS := schedule.CalibrationEnd.Unix()

	sc := dto.SessionContext{
		SessionID:          schedule.ID,
		DateKey:            schedule.DateKey,
		AnchorTS:           anchorTS,
		LockEndTS:          lockEndTS,
		Status:             schedule.Status(now),
		Price:              price,
		CalibrationCandles: dto.SliceByTime(candles5m, anchorTS, lockEndTS),
		PostLockCandles:    dto.SliceByTime(candles5m, lockEndTS, schedule.CloseTS.Unix()),
	}

	if len(sc.CalibrationCandles) >= minCalibrationCandles {
		sc.SessionOpenPrice = sc.CalibrationCandles[0].Open
		sc.R30High, sc.R30Low = calibrationRange(sc.CalibrationCandles)
	}

	return sc, nil
}

func calibrationRange(candles []dto.Candle) (high, low float64) {
	high, low = candles[0].High, candles[0].Low
	for _, c := range candles[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low
}

// GetLevels returns the session context plus the locked level set. When the
// calibration window has not produced enough candles yet, the level set
// comes back empty and the caller reports insufficient data instead of
// erroring.
func (s *levelService) GetLevels(ctx context.Context, symbol, exchange, sessionID string) (dto.SessionContext, dto.LevelSet, error) {
	sc, err := s.BuildSessionContext(ctx, symbol, exchange, sessionID)
	if err != nil {
		return dto.SessionContext{}, dto.LevelSet{}, err
	}

	if sc.R30High == 0 && sc.R30Low == 0 {
		s.log.InfoContext(ctx, "Calibration window incomplete, levels not locked",
			logger.StringField("symbol", symbol),
			logger.StringField("session", sc.SessionID),
			logger.IntField("calibration_candles", len(sc.CalibrationCandles)),
		)
		return sc, dto.LevelSet{}, nil
	}

	cacheKey := fmt.Sprintf(common.KEY_LOCKED_LEVELS, symbol, sc.SessionID, sc.DateKey)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if ls, ok := cached.(dto.LevelSet); ok {
			return sc, ls, nil
		}
	}

	if ls, ok := s.loadPersisted(ctx, symbol, sc); ok {
		s.cache.Set(cacheKey, ls, s.cfg.Cache.DefaultExpiration)
		return sc, ls, nil
	}

	source, err := s.candleRepo.GetCandles(ctx, dto.GetCandlesParam{
		Symbol:   symbol,
		Exchange: exchange,
		Interval: dto.Interval15Min,
		Limit:    sourceFetchLimit,
	})
	if err != nil {
		return dto.SessionContext{}, dto.LevelSet{}, fmt.Errorf("failed to get source candles for %s: %w", symbol, err)
	}

	ls, err := technical.BuildLevelSet(sc.Price, dto.Range30m{High: sc.R30High, Low: sc.R30Low}, source)
	if err != nil {
		return dto.SessionContext{}, dto.LevelSet{}, fmt.Errorf("failed to build level set for %s: %w", symbol, err)
	}

	s.cache.Set(cacheKey, ls, s.cfg.Cache.DefaultExpiration)
	s.persist(ctx, symbol, exchange, sc, ls)

	return sc, ls, nil
}

func (s *levelService) loadPersisted(ctx context.Context, symbol string, sc dto.SessionContext) (dto.LevelSet, bool) {
	row, err := s.sessionLevelRepo.Get(ctx, model.GetSessionLevelParam{
		Symbol:    symbol,
		SessionID: sc.SessionID,
		DateKey:   sc.DateKey,
	})
	if err != nil {
		s.log.WarnContext(ctx, "Failed to load persisted levels",
			logger.StringField("symbol", symbol), logger.ErrorField(err))
		return dto.LevelSet{}, false
	}
	if row == nil {
		return dto.LevelSet{}, false
	}

	var ls dto.LevelSet
	if err := json.Unmarshal(row.Levels, &ls); err != nil {
		s.log.WarnContext(ctx, "Failed to decode persisted levels",
			logger.StringField("symbol", symbol), logger.ErrorField(err))
		return dto.LevelSet{}, false
	}
	return ls, true
}

func (s *levelService) persist(ctx context.Context, symbol, exchange string, sc dto.SessionContext, ls dto.LevelSet) {
	levelsJSON, err := json.Marshal(ls)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to encode levels", logger.ErrorField(err))
		return
	}
	shelvesJSON, err := json.Marshal(ls.HTFShelves)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to encode shelves", logger.ErrorField(err))
		return
	}

	row := &model.SessionLevel{
		Symbol:    symbol,
		Exchange:  exchange,
		SessionID: sc.SessionID,
		DateKey:   sc.DateKey,
		Price:     sc.Price,
		Levels:    datatypes.JSON(levelsJSON),
		Shelves:   datatypes.JSON(shelvesJSON),
		LockedAt:  time.Unix(sc.LockEndTS, 0).UTC(),
	}
	if err := s.sessionLevelRepo.Upsert(ctx, row); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist session levels",
			logger.StringField("symbol", symbol),
			logger.StringField("session", sc.SessionID),
			logger.ErrorField(err))
	}
}
