package service

import (
	"context"
	"fmt"

	"intraday-levels/config"
	"intraday-levels/internal/dto"
	"intraday-levels/internal/repository"
	"intraday-levels/pkg/logger"
)

// NarrativeService wraps a directive evaluation with a model-written
// briefing. The model receives the numbers read-only and contributes prose
// only.
type NarrativeService interface {
	Briefing(ctx context.Context, symbol, exchange, sessionID string) (*dto.BriefingResponse, error)
}

type narrativeService struct {
	cfg              *config.Config
	log              *logger.Logger
	directiveService DirectiveService
	aiRepo           repository.AIRepository
}

func NewNarrativeService(
	cfg *config.Config,
	log *logger.Logger,
	directiveService DirectiveService,
	aiRepo repository.AIRepository,
) NarrativeService {
	return &narrativeService{
		cfg:              cfg,
		log:              log,
		directiveService: directiveService,
		aiRepo:           aiRepo,
	}
}

func (s *narrativeService) Briefing(ctx context.Context, symbol, exchange, sessionID string) (*dto.BriefingResponse, error) {
	if s.aiRepo == nil {
		return nil, fmt.Errorf("briefing generation is not configured")
	}

	eval, err := s.directiveService.Evaluate(ctx, symbol, exchange, sessionID)
	if err != nil {
		return nil, err
	}

	narrative, err := s.aiRepo.GenerateBriefing(ctx, dto.NarrativePayload{
		Symbol:     symbol,
		Levels:     eval.Levels,
		Range30m:   dto.Range30m{High: eval.Levels.Range30mHigh, Low: eval.Levels.Range30mLow},
		HTFShelves: eval.Levels.HTFShelves,
		TradeLogic: eval.Playbook,
		Directive:  eval.Directive,
	})
	if err != nil {
		return nil, err
	}

	return &dto.BriefingResponse{
		DirectiveResponse: *eval,
		Narrative:         narrative,
	}, nil
}
