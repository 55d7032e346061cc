package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/services"
)

type ActionsHandler struct {
	actions services.ActionService
}

func NewActionsHandler(actions services.ActionService) *ActionsHandler {
	return &ActionsHandler{actions: actions}
}

// GET /api/jobs/:id/actions
func (h *ActionsHandler) ListByJob(c *gin.Context) {
	userID, _, ok := callerID(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_job_id", err)
		return
	}
	actions, err := h.actions.ListByJob(c.Request.Context(), jobID, userID, c.Query("status"))
	if err != nil {
		if !respondServiceError(c, err) {
			RespondError(c, http.StatusInternalServerError, "action_list_failed", err)
		}
		return
	}
	RespondOK(c, gin.H{"actions": actions})
}

// POST /api/actions/:id/dismiss
func (h *ActionsHandler) Dismiss(c *gin.Context) {
	h.setStatus(c, h.actions.Dismiss)
}

// POST /api/actions/:id/resolve
func (h *ActionsHandler) Resolve(c *gin.Context) {
	h.setStatus(c, h.actions.Resolve)
}

func (h *ActionsHandler) setStatus(c *gin.Context, apply func(ctx context.Context, actionID, userID uuid.UUID) (*domain.ForecastAction, error)) {
	userID, _, ok := callerID(c)
	if !ok {
		return
	}
	actionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_action_id", err)
		return
	}
	action, err := apply(c.Request.Context(), actionID, userID)
	if err != nil {
		if !respondServiceError(c, err) {
			RespondError(c, http.StatusInternalServerError, "action_update_failed", err)
		}
		return
	}
	RespondOK(c, gin.H{"action": action})
}
