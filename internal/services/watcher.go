package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/pkg/envutil"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
)

// DefaultPollInterval matches the dashboard's polling cadence.
const DefaultPollInterval = 3000 * time.Millisecond

// JobWatcher polls one job until it reaches a terminal status or the context
// is cancelled. Ticks never overlap: the next wait starts only after the
// previous fetch returned.
type JobWatcher interface {
	Watch(ctx context.Context, jobID, userID uuid.UUID) <-chan *domain.ForecastJob
}

type jobWatcher struct {
	log      *logger.Logger
	jobs     JobService
	interval time.Duration
}

func NewJobWatcher(log *logger.Logger, jobs JobService) JobWatcher {
	intervalMs := envutil.Int("JOB_POLL_INTERVAL_MS", int(DefaultPollInterval/time.Millisecond))
	interval := time.Duration(intervalMs) * time.Millisecond
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &jobWatcher{
		log:      log.With("service", "JobWatcher"),
		jobs:     jobs,
		interval: interval,
	}
}

func (w *jobWatcher) Watch(ctx context.Context, jobID, userID uuid.UUID) <-chan *domain.ForecastJob {
	out := make(chan *domain.ForecastJob)
	go func() {
		defer close(out)
		for {
			job, err := w.jobs.GetByIDForUser(ctx, jobID, userID)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, ErrJobNotOwned) {
					return
				}
				w.log.Warn("job poll failed", "job_id", jobID, "error", err)
			} else {
				select {
				case out <- job:
				case <-ctx.Done():
					return
				}
				if job.IsTerminal() {
					return
				}
			}

			select {
			case <-time.After(w.interval):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
