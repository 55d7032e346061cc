package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
)

type SeriesResultRepo interface {
	ListByJobForUser(dbc dbctx.Context, jobID, userID uuid.UUID, limit, offset int) ([]*domain.SeriesResult, error)
	CountByJobForUser(dbc dbctx.Context, jobID, userID uuid.UUID) (int64, error)
	GetBySeriesKeyForUser(dbc dbctx.Context, jobID, userID uuid.UUID, seriesKey string) (*domain.SeriesResult, error)
}

type seriesResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSeriesResultRepo(db *gorm.DB, baseLog *logger.Logger) SeriesResultRepo {
	return &seriesResultRepo{db: db, log: baseLog.With("repo", "SeriesResultRepo")}
}

func (r *seriesResultRepo) ListByJobForUser(dbc dbctx.Context, jobID, userID uuid.UUID, limit, offset int) ([]*domain.SeriesResult, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.SeriesResult
	if jobID == uuid.Nil || userID == uuid.Nil {
		return out, nil
	}
	q := transaction.WithContext(dbc.Ctx).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Order("wape DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *seriesResultRepo) CountByJobForUser(dbc dbctx.Context, jobID, userID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if jobID == uuid.Nil || userID == uuid.Nil {
		return 0, nil
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&domain.SeriesResult{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *seriesResultRepo) GetBySeriesKeyForUser(dbc dbctx.Context, jobID, userID uuid.UUID, seriesKey string) (*domain.SeriesResult, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if jobID == uuid.Nil || userID == uuid.Nil || seriesKey == "" {
		return nil, nil
	}
	var row domain.SeriesResult
	err := transaction.WithContext(dbc.Ctx).
		Where("job_id = ? AND user_id = ? AND series_key = ?", jobID, userID, seriesKey).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}
