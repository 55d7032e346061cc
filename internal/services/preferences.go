package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/repos"
)

type PreferencesService interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error)
	Update(ctx context.Context, userID uuid.UUID, update PreferencesUpdate) (*domain.UserPreferences, error)
}

type PreferencesUpdate struct {
	Horizon         *int     `json:"horizon,omitempty"`
	GatingEnabled   *bool    `json:"gating_enabled,omitempty"`
	ConfidenceLevel *float64 `json:"confidence_level,omitempty"`
}

type preferencesService struct {
	db        *gorm.DB
	log       *logger.Logger
	prefsRepo repos.UserPreferencesRepo
}

func NewPreferencesService(db *gorm.DB, log *logger.Logger, prefsRepo repos.UserPreferencesRepo) PreferencesService {
	return &preferencesService{
		db:        db,
		log:       log.With("service", "PreferencesService"),
		prefsRepo: prefsRepo,
	}
}

// GetOrCreate returns stored preferences, seeding defaults on first read.
func (ps *preferencesService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	prefs, err := ps.prefsRepo.GetByUserID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, err
	}
	if prefs != nil {
		return prefs, nil
	}
	return ps.prefsRepo.Upsert(dbctx.Context{Ctx: ctx}, domain.DefaultUserPreferences(userID))
}

func (ps *preferencesService) Update(ctx context.Context, userID uuid.UUID, update PreferencesUpdate) (*domain.UserPreferences, error) {
	prefs, err := ps.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.Horizon != nil {
		if *update.Horizon < 1 || *update.Horizon > 52 {
			return nil, fmt.Errorf("horizon must be between 1 and 52")
		}
		prefs.Horizon = *update.Horizon
	}
	if update.GatingEnabled != nil {
		prefs.GatingEnabled = *update.GatingEnabled
	}
	if update.ConfidenceLevel != nil {
		if *update.ConfidenceLevel <= 0 || *update.ConfidenceLevel >= 1 {
			return nil, fmt.Errorf("confidence level must be in (0,1)")
		}
		prefs.ConfidenceLevel = *update.ConfidenceLevel
	}
	return ps.prefsRepo.Upsert(dbctx.Context{Ctx: ctx}, prefs)
}
