package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/services"
)

type JobsHandler struct {
	log     *logger.Logger
	jobs    services.JobService
	watcher services.JobWatcher
}

func NewJobsHandler(log *logger.Logger, jobs services.JobService, watcher services.JobWatcher) *JobsHandler {
	return &JobsHandler{log: log.With("handler", "JobsHandler"), jobs: jobs, watcher: watcher}
}

// GET /api/jobs
func (h *JobsHandler) List(c *gin.Context) {
	userID, _, ok := callerID(c)
	if !ok {
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	jobs, err := h.jobs.ListForUser(c.Request.Context(), userID, limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "job_list_failed", err)
		return
	}
	views := make([]services.JobStatusView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, services.NewJobStatusView(job))
	}
	RespondOK(c, gin.H{"jobs": views})
}

// GET /api/jobs/:id
func (h *JobsHandler) GetByID(c *gin.Context) {
	userID, _, ok := callerID(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_job_id", err)
		return
	}
	job, err := h.jobs.GetByIDForUser(c.Request.Context(), jobID, userID)
	if err != nil {
		if !respondServiceError(c, err) {
			RespondError(c, http.StatusInternalServerError, "job_lookup_failed", err)
		}
		return
	}
	RespondOK(c, gin.H{"job": services.NewJobStatusView(job)})
}

// GET /api/jobs/:id/watch streams status snapshots as SSE until the job
// reaches a terminal status or the client goes away.
func (h *JobsHandler) Watch(c *gin.Context) {
	userID, _, ok := callerID(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_job_id", err)
		return
	}

	w := c.Writer
	flusher, flushable := c.Writer.(http.Flusher)
	if !flushable {
		RespondError(c, http.StatusInternalServerError, "streaming_unsupported", fmt.Errorf("response writer cannot flush"))
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := c.Request.Context()
	snapshots := h.watcher.Watch(ctx, jobID, userID)

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case job, open := <-snapshots:
			if !open {
				fmt.Fprint(w, "event: done\ndata: {}\n\n")
				flusher.Flush()
				return
			}
			payload, err := json.Marshal(services.NewJobStatusView(job))
			if err != nil {
				h.log.Warn("marshal job snapshot failed", "job_id", jobID, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: status\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
