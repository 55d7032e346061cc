package app

import (
	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/platform/gcp"
	"github.com/previsio/previsio-backend/internal/platform/n8n"
	"github.com/previsio/previsio-backend/internal/platform/redis"
)

type Clients struct {
	GcpBucket      gcp.BucketService
	N8N            n8n.Client
	JobStatusCache redis.JobStatusCache
}

// wireClients builds the external collaborators. The bucket and the status
// cache degrade to nil when unconfigured; the webhook client always exists
// and reports its own misconfiguration per call.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")

	bucket, err := gcp.NewBucketService(log)
	if err != nil {
		log.Warn("GCS bucket service unavailable", "error", err)
		bucket = nil
	}

	cache, err := redis.NewJobStatusCache(log)
	if err != nil {
		log.Warn("Redis job status cache unavailable", "error", err)
		cache = nil
	}

	return Clients{
		GcpBucket:      bucket,
		N8N:            n8n.NewClient(log, n8n.ConfigFromEnv()),
		JobStatusCache: cache,
	}
}
