package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/services"
)

type ForecastHandler struct {
	log      *logger.Logger
	forecast services.ForecastService
}

func NewForecastHandler(log *logger.Logger, forecast services.ForecastService) *ForecastHandler {
	return &ForecastHandler{log: log.With("handler", "ForecastHandler"), forecast: forecast}
}

// POST /api/forecast/upload accepts a multipart CSV, stores it, creates the pending
// job row and fires the pipeline webhook. A webhook failure still returns the
// created job; the caller retries the trigger separately.
func (h *ForecastHandler) Upload(c *gin.Context) {
	userID, plan, ok := callerID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxUploadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "file_open_failed", err)
		return
	}
	defer file.Close()

	result, err := h.forecast.UploadAndTrigger(c.Request.Context(), userID, plan, fileHeader.Filename, file)
	if err != nil {
		if !respondServiceError(c, err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	status := http.StatusOK
	if result.TriggerError != "" {
		// Upload and job row exist; only the webhook leg failed.
		status = http.StatusAccepted
	}
	c.JSON(status, result)
}

// POST /api/forecast/run re-fires the pipeline webhook for an existing job,
// optionally overriding the forecast configuration.
func (h *ForecastHandler) Trigger(c *gin.Context) {
	userID, plan, ok := callerID(c)
	if !ok {
		return
	}
	var req struct {
		JobID          uuid.UUID       `json:"job_id"`
		ConfigOverride json.RawMessage `json:"config_override"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.JobID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.forecast.Trigger(c.Request.Context(), userID, plan, req.JobID, req.ConfigOverride); err != nil {
		if !respondServiceError(c, err) {
			RespondError(c, http.StatusInternalServerError, "forecast_trigger_failed", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true", "job_id": req.JobID})
}
