package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/pkg/envutil"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
)

// JobStatusCache absorbs the dashboard's polling reads. Entries live a couple
// of seconds at most; the database stays the source of truth.
type JobStatusCache interface {
	Get(ctx context.Context, jobID, userID uuid.UUID) (*domain.ForecastJob, bool)
	Set(ctx context.Context, job *domain.ForecastJob)
	Invalidate(ctx context.Context, jobID, userID uuid.UUID)
	Close() error
}

type jobStatusCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewJobStatusCache(log *logger.Logger) (JobStatusCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := envutil.String("REDIS_ADDR", "")
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlMs := envutil.Int("JOB_STATUS_CACHE_TTL_MS", 2000)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &jobStatusCache{
		log: log.With("service", "JobStatusCache"),
		rdb: rdb,
		ttl: time.Duration(ttlMs) * time.Millisecond,
	}, nil
}

func cacheKey(jobID, userID uuid.UUID) string {
	return fmt.Sprintf("job_status:%s:%s", userID, jobID)
}

func (c *jobStatusCache) Get(ctx context.Context, jobID, userID uuid.UUID) (*domain.ForecastJob, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(jobID, userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var job domain.ForecastJob
	if err := json.Unmarshal(raw, &job); err != nil {
		c.log.Warn("corrupt cache entry dropped", "job_id", jobID, "error", err)
		_ = c.rdb.Del(ctx, cacheKey(jobID, userID)).Err()
		return nil, false
	}
	return &job, true
}

func (c *jobStatusCache) Set(ctx context.Context, job *domain.ForecastJob) {
	if c == nil || c.rdb == nil || job == nil {
		return
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(job.ID, job.UserID), raw, c.ttl).Err(); err != nil {
		c.log.Debug("cache set failed", "job_id", job.ID, "error", err)
	}
}

func (c *jobStatusCache) Invalidate(ctx context.Context, jobID, userID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, cacheKey(jobID, userID)).Err()
}

func (c *jobStatusCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
