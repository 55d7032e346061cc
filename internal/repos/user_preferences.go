package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
)

type UserPreferencesRepo interface {
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*domain.UserPreferences, error)
	Upsert(dbc dbctx.Context, prefs *domain.UserPreferences) (*domain.UserPreferences, error)
}

type userPreferencesRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserPreferencesRepo(db *gorm.DB, baseLog *logger.Logger) UserPreferencesRepo {
	return &userPreferencesRepo{db: db, log: baseLog.With("repo", "UserPreferencesRepo")}
}

func (r *userPreferencesRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var prefs domain.UserPreferences
	err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&prefs).Error
	if err != nil {
		return nil, err
	}
	if prefs.ID == uuid.Nil {
		return nil, nil
	}
	return &prefs, nil
}

func (r *userPreferencesRepo) Upsert(dbc dbctx.Context, prefs *domain.UserPreferences) (*domain.UserPreferences, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if prefs == nil || prefs.UserID == uuid.Nil {
		return nil, nil
	}
	if prefs.ID == uuid.Nil {
		prefs.ID = uuid.New()
	}
	err := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"horizon", "gating_enabled", "confidence_level", "updated_at"}),
		}).
		Create(prefs).Error
	if err != nil {
		return nil, err
	}
	return prefs, nil
}
