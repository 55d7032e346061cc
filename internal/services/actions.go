package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/repos"
)

type ActionService interface {
	ListByJob(ctx context.Context, jobID, userID uuid.UUID, status string) ([]*domain.ForecastAction, error)
	Dismiss(ctx context.Context, actionID, userID uuid.UUID) (*domain.ForecastAction, error)
	Resolve(ctx context.Context, actionID, userID uuid.UUID) (*domain.ForecastAction, error)
}

type actionService struct {
	log        *logger.Logger
	jobRepo    repos.ForecastJobRepo
	actionRepo repos.ForecastActionRepo
}

func NewActionService(log *logger.Logger, jobRepo repos.ForecastJobRepo, actionRepo repos.ForecastActionRepo) ActionService {
	return &actionService{
		log:        log.With("service", "ActionService"),
		jobRepo:    jobRepo,
		actionRepo: actionRepo,
	}
}

func (s *actionService) ListByJob(ctx context.Context, jobID, userID uuid.UUID, status string) ([]*domain.ForecastAction, error) {
	dbc := dbctx.Context{Ctx: ctx}
	job, err := s.jobRepo.GetByIDForUser(dbc, jobID, userID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotOwned
	}
	return s.actionRepo.ListByJobForUser(dbc, jobID, userID, status)
}

func (s *actionService) Dismiss(ctx context.Context, actionID, userID uuid.UUID) (*domain.ForecastAction, error) {
	return s.setStatus(ctx, actionID, userID, domain.ActionStatusDismissed)
}

func (s *actionService) Resolve(ctx context.Context, actionID, userID uuid.UUID) (*domain.ForecastAction, error) {
	return s.setStatus(ctx, actionID, userID, domain.ActionStatusResolved)
}

func (s *actionService) setStatus(ctx context.Context, actionID, userID uuid.UUID, status string) (*domain.ForecastAction, error) {
	dbc := dbctx.Context{Ctx: ctx}
	updated, err := s.actionRepo.SetStatusForUser(dbc, actionID, userID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrActionNotFound
	}
	return s.actionRepo.GetByIDForUser(dbc, actionID, userID)
}
