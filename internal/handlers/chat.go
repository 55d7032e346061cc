package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/previsio/previsio-backend/internal/services"
)

type ChatHandler struct {
	chat services.ChatService
}

func NewChatHandler(chat services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// POST /api/chat relays a question about one of the caller's jobs to the
// assistant webhook and returns the upstream answer as-is.
func (h *ChatHandler) Ask(c *gin.Context) {
	userID, _, ok := callerID(c)
	if !ok {
		return
	}
	var req services.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	answer, err := h.chat.Ask(c.Request.Context(), userID, req)
	if err != nil {
		if !respondServiceError(c, err) {
			RespondError(c, http.StatusInternalServerError, "chat_failed", err)
		}
		return
	}
	c.Data(http.StatusOK, "application/json", answer)
}
