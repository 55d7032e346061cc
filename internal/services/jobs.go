package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/insights"
	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/platform/redis"
	"github.com/previsio/previsio-backend/internal/repos"
)

type JobService interface {
	GetByIDForUser(ctx context.Context, jobID, userID uuid.UUID) (*domain.ForecastJob, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ForecastJob, error)
}

// JobStatusView is the poll-friendly shape: derived booleans plus metric
// ratios coerced from their string columns.
type JobStatusView struct {
	ID           uuid.UUID `json:"id"`
	Status       string    `json:"status"`
	Progress     int       `json:"progress"`
	IsPending    bool      `json:"is_pending"`
	IsProcessing bool      `json:"is_processing"`
	IsComplete   bool      `json:"is_complete"`
	IsFailed     bool      `json:"is_failed"`
	IsTerminal   bool      `json:"is_terminal"`
	ErrorCode    string    `json:"error_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	SeriesCount  int       `json:"series_count"`
	AvgWAPE      *float64  `json:"avg_wape,omitempty"`
	AvgSMAPE     *float64  `json:"avg_smape,omitempty"`
	AvgBias      *float64  `json:"avg_bias,omitempty"`
}

func NewJobStatusView(job *domain.ForecastJob) JobStatusView {
	view := JobStatusView{
		ID:           job.ID,
		Status:       job.Status,
		Progress:     job.Progress,
		IsPending:    job.IsPending(),
		IsProcessing: job.IsProcessing(),
		IsComplete:   job.IsComplete(),
		IsFailed:     job.IsFailed(),
		IsTerminal:   job.IsTerminal(),
		ErrorCode:    job.ErrorCode,
		ErrorMessage: job.ErrorMessage,
		SeriesCount:  job.SeriesCount,
	}
	if v, ok := insights.ParseRatio(job.AvgWAPE); ok {
		view.AvgWAPE = &v
	}
	if v, ok := insights.ParseRatio(job.AvgSMAPE); ok {
		view.AvgSMAPE = &v
	}
	if v, ok := insights.ParseRatio(job.AvgBias); ok {
		view.AvgBias = &v
	}
	return view
}

type jobService struct {
	db          *gorm.DB
	log         *logger.Logger
	jobRepo     repos.ForecastJobRepo
	statusCache redis.JobStatusCache
}

func NewJobService(db *gorm.DB, log *logger.Logger, jobRepo repos.ForecastJobRepo, statusCache redis.JobStatusCache) JobService {
	return &jobService{
		db:          db,
		log:         log.With("service", "JobService"),
		jobRepo:     jobRepo,
		statusCache: statusCache,
	}
}

func (js *jobService) GetByIDForUser(ctx context.Context, jobID, userID uuid.UUID) (*domain.ForecastJob, error) {
	if js.statusCache != nil {
		if job, ok := js.statusCache.Get(ctx, jobID, userID); ok {
			return job, nil
		}
	}
	job, err := js.jobRepo.GetByIDForUser(dbctx.Context{Ctx: ctx}, jobID, userID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotOwned
	}
	if js.statusCache != nil {
		js.statusCache.Set(ctx, job)
	}
	return job, nil
}

func (js *jobService) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ForecastJob, error) {
	return js.jobRepo.ListByUser(dbctx.Context{Ctx: ctx}, userID, limit)
}
