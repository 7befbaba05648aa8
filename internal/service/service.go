package service

import (
	"intraday-levels/config"
	"intraday-levels/internal/repository"
	"intraday-levels/pkg/cache"
	"intraday-levels/pkg/logger"
	"intraday-levels/pkg/telegram"
)

type Service struct {
	LevelService     LevelService
	DirectiveService DirectiveService
	NarrativeService NarrativeService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	notifier *telegram.Notifier,
) *Service {
	levelService := NewLevelService(cfg, log, repo.CandleRepo, repo.SessionScheduleRepo, repo.SessionLevelRepo, inmemoryCache)
	directiveService := NewDirectiveService(cfg, log, levelService, repo.CandleRepo)
	narrativeService := NewNarrativeService(cfg, log, directiveService, repo.GeminiAIRepo)
	schedulerService := NewSchedulerService(cfg, log, directiveService, repo.SessionLevelRepo, notifier, inmemoryCache)

	return &Service{
		LevelService:     levelService,
		DirectiveService: directiveService,
		NarrativeService: narrativeService,
		SchedulerService: schedulerService,
	}
}
