package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/services"
)

type SeriesHandler struct {
	series services.SeriesService
}

func NewSeriesHandler(series services.SeriesService) *SeriesHandler {
	return &SeriesHandler{series: series}
}

// GET /api/jobs/:id/series
func (h *SeriesHandler) ListByJob(c *gin.Context) {
	userID, _, ok := callerID(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_job_id", err)
		return
	}

	limit, offset := 100, 0
	if raw := c.Query("limit"); raw != "" {
		if n, convErr := strconv.Atoi(raw); convErr == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if n, convErr := strconv.Atoi(raw); convErr == nil && n >= 0 {
			offset = n
		}
	}

	page, err := h.series.ListByJob(c.Request.Context(), jobID, userID, limit, offset)
	if err != nil {
		if !respondServiceError(c, err) {
			RespondError(c, http.StatusInternalServerError, "series_list_failed", err)
		}
		return
	}
	RespondOK(c, page)
}
