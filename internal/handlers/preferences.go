package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/previsio/previsio-backend/internal/services"
)

type PreferencesHandler struct {
	prefs services.PreferencesService
}

func NewPreferencesHandler(prefs services.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

// GET /api/preferences
func (h *PreferencesHandler) Get(c *gin.Context) {
	userID, _, ok := callerID(c)
	if !ok {
		return
	}
	prefs, err := h.prefs.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "preferences_lookup_failed", err)
		return
	}
	RespondOK(c, prefs)
}

// PUT /api/preferences
func (h *PreferencesHandler) Update(c *gin.Context) {
	userID, _, ok := callerID(c)
	if !ok {
		return
	}
	var req services.PreferencesUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	prefs, err := h.prefs.Update(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	RespondOK(c, prefs)
}
