package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"intraday-levels/config"
	"intraday-levels/internal/dto"
	"intraday-levels/internal/repository"
	"intraday-levels/pkg/cache"
	"intraday-levels/pkg/common"
	"intraday-levels/pkg/logger"
	"intraday-levels/pkg/telegram"
	"intraday-levels/pkg/utils"
)

const (
	defaultEvaluateSpec = "*/5 * * * *"
	alertDedupTTL       = 12 * time.Hour

	// Locked level rows are only read back during their own session day;
	// anything older is kept two weeks for inspection and then pruned.
	retentionSpec = "30 0 * * *"
	retentionDays = 14
)

// SchedulerService periodically evaluates the watchlist and pushes an alert
// the first time a symbol's directive flips to EXECUTE for the session day.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context)
	EvaluateWatchlist(ctx context.Context) error
	PruneStaleLevels(ctx context.Context)
}

type schedulerService struct {
	cfg              *config.Config
	log              *logger.Logger
	directiveService DirectiveService
	sessionLevelRepo repository.SessionLevelRepository
	notifier         *telegram.Notifier
	cache            cache.Cache
	cron             *cron.Cron
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	directiveService DirectiveService,
	sessionLevelRepo repository.SessionLevelRepository,
	notifier *telegram.Notifier,
	inmemoryCache cache.Cache,
) SchedulerService {
	return &schedulerService{
		cfg:              cfg,
		log:              log,
		directiveService: directiveService,
		sessionLevelRepo: sessionLevelRepo,
		notifier:         notifier,
		cache:            inmemoryCache,
		cron:             cron.New(),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	spec := s.cfg.Scheduler.EvaluateSpec
	if spec == "" {
		spec = defaultEvaluateSpec
	}

	_, err := s.cron.AddFunc(spec, func() {
		utils.GoSafe(func() {
			runCtx := ctx
			if s.cfg.Scheduler.TimeoutDuration > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(ctx, s.cfg.Scheduler.TimeoutDuration)
				defer cancel()
			}
			if err := s.EvaluateWatchlist(runCtx); err != nil {
				s.log.ErrorContext(runCtx, "Watchlist evaluation failed", logger.ErrorField(err))
			}
		})
	})
	if err != nil {
		return fmt.Errorf("failed to schedule watchlist evaluation: %w", err)
	}

	_, err = s.cron.AddFunc(retentionSpec, func() {
		utils.GoSafe(func() {
			s.PruneStaleLevels(ctx)
		})
	})
	if err != nil {
		return fmt.Errorf("failed to schedule level retention: %w", err)
	}

	s.cron.Start()
	s.log.Info("Scheduler started",
		logger.StringField("spec", spec),
		logger.IntField("watchlist", len(s.cfg.Watchlist)),
	)
	return nil
}

func (s *schedulerService) Stop(ctx context.Context) {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
}

func (s *schedulerService) EvaluateWatchlist(ctx context.Context) error {
	if len(s.cfg.Watchlist) == 0 {
		s.log.InfoContext(ctx, "Watchlist is empty, nothing to evaluate")
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Scheduler.MaxConcurrency)

	for _, entry := range s.cfg.Watchlist {
		exchange, symbol := parseWatchlistEntry(entry)
		g.Go(func() error {
			if !utils.ShouldContinue(gCtx, s.log) {
				return gCtx.Err()
			}
			s.evaluateSymbol(gCtx, symbol, exchange)
			return nil
		})
	}

	return g.Wait()
}

// parseWatchlistEntry splits "KUCOIN:BTC-USDT" style entries; a bare symbol
// defaults to Binance.
func parseWatchlistEntry(entry string) (exchange, symbol string) {
	if i := strings.IndexByte(entry, ':'); i >= 0 {
		return strings.ToUpper(entry[:i]), entry[i+1:]
	}
	return common.EXCHANGE_BINANCE, entry
}

func (s *schedulerService) evaluateSymbol(ctx context.Context, symbol, exchange string) {
	eval, err := s.directiveService.Evaluate(ctx, symbol, exchange, "")
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to evaluate watchlist symbol",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err))
		return
	}

	if eval.Directive.Action != dto.DirectiveExecute {
		return
	}

	dedupKey := fmt.Sprintf(common.KEY_ALERT_SENT, symbol, eval.Session.DateKey, eval.Directive.Side)
	if _, sent := s.cache.Get(dedupKey); sent {
		return
	}

	if err := s.notifier.Send(ctx, formatAlert(eval)); err != nil {
		return
	}
	s.cache.Set(dedupKey, struct{}{}, alertDedupTTL)
}

// PruneStaleLevels drops locked level rows older than the retention window.
func (s *schedulerService) PruneStaleLevels(ctx context.Context) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays).Format("2006-01-02")
	rows, err := s.sessionLevelRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to prune stale session levels",
			logger.StringField("cutoff", cutoff),
			logger.ErrorField(err))
		return
	}
	if rows > 0 {
		s.log.InfoContext(ctx, "Pruned stale session levels",
			logger.StringField("cutoff", cutoff),
			logger.IntField("rows", int(rows)))
	}
}

func formatAlert(eval *dto.DirectiveResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s %s EXECUTE*\n", eval.Symbol, eval.Directive.Side)
	fmt.Fprintf(&b, "Session: %s (%s)\n", eval.Session.SessionID, eval.Session.DateKey)
	fmt.Fprintf(&b, "Entry: %.4f\n", eval.Directive.Entry)
	fmt.Fprintf(&b, "Stop: %.4f\n", eval.Directive.Stop)
	for i, target := range eval.Directive.Targets {
		fmt.Fprintf(&b, "T%d: %.4f\n", i+1, target)
	}
	fmt.Fprintf(&b, "Trigger: %.4f", eval.Directive.Trigger)
	return b.String()
}
