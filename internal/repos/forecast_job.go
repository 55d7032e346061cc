package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
)

type ForecastJobRepo interface {
	Create(dbc dbctx.Context, jobs []*domain.ForecastJob) ([]*domain.ForecastJob, error)
	GetByIDForUser(dbc dbctx.Context, jobID, userID uuid.UUID) (*domain.ForecastJob, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*domain.ForecastJob, error)
	UpdateFieldsForUser(dbc dbctx.Context, jobID, userID uuid.UUID, updates map[string]interface{}) (bool, error)
}

type forecastJobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewForecastJobRepo(db *gorm.DB, baseLog *logger.Logger) ForecastJobRepo {
	return &forecastJobRepo{db: db, log: baseLog.With("repo", "ForecastJobRepo")}
}

func (r *forecastJobRepo) Create(dbc dbctx.Context, jobs []*domain.ForecastJob) ([]*domain.ForecastJob, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(jobs) == 0 {
		return []*domain.ForecastJob{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetByIDForUser returns nil, nil when the job does not exist or belongs to
// someone else; ownership is never distinguishable from absence.
func (r *forecastJobRepo) GetByIDForUser(dbc dbctx.Context, jobID, userID uuid.UUID) (*domain.ForecastJob, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if jobID == uuid.Nil || userID == uuid.Nil {
		return nil, nil
	}
	var job domain.ForecastJob
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", jobID, userID).
		Limit(1).
		Find(&job).Error
	if err != nil {
		return nil, err
	}
	if job.ID == uuid.Nil {
		return nil, nil
	}
	return &job, nil
}

func (r *forecastJobRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*domain.ForecastJob, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.ForecastJob
	if userID == uuid.Nil {
		return out, nil
	}
	q := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *forecastJobRepo) UpdateFieldsForUser(dbc dbctx.Context, jobID, userID uuid.UUID, updates map[string]interface{}) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if jobID == uuid.Nil || userID == uuid.Nil || len(updates) == 0 {
		return false, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&domain.ForecastJob{}).
		Where("id = ? AND user_id = ?", jobID, userID).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
