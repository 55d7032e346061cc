package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
)

type ForecastActionRepo interface {
	ListByJobForUser(dbc dbctx.Context, jobID, userID uuid.UUID, status string) ([]*domain.ForecastAction, error)
	GetByIDForUser(dbc dbctx.Context, actionID, userID uuid.UUID) (*domain.ForecastAction, error)
	SetStatusForUser(dbc dbctx.Context, actionID, userID uuid.UUID, status string) (bool, error)
}

type forecastActionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewForecastActionRepo(db *gorm.DB, baseLog *logger.Logger) ForecastActionRepo {
	return &forecastActionRepo{db: db, log: baseLog.With("repo", "ForecastActionRepo")}
}

func (r *forecastActionRepo) ListByJobForUser(dbc dbctx.Context, jobID, userID uuid.UUID, status string) ([]*domain.ForecastAction, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.ForecastAction
	if jobID == uuid.Nil || userID == uuid.Nil {
		return out, nil
	}
	q := transaction.WithContext(dbc.Ctx).
		Where("job_id = ? AND user_id = ?", jobID, userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.
		Order("priority ASC, created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *forecastActionRepo) GetByIDForUser(dbc dbctx.Context, actionID, userID uuid.UUID) (*domain.ForecastAction, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if actionID == uuid.Nil || userID == uuid.Nil {
		return nil, nil
	}
	var action domain.ForecastAction
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", actionID, userID).
		Limit(1).
		Find(&action).Error
	if err != nil {
		return nil, err
	}
	if action.ID == uuid.Nil {
		return nil, nil
	}
	return &action, nil
}

func (r *forecastActionRepo) SetStatusForUser(dbc dbctx.Context, actionID, userID uuid.UUID, status string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if actionID == uuid.Nil || userID == uuid.Nil || status == "" {
		return false, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&domain.ForecastAction{}).
		Where("id = ? AND user_id = ?", actionID, userID).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
