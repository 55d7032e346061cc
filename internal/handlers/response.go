package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/previsio/previsio-backend/internal/platform/n8n"
	"github.com/previsio/previsio-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// jobNotOwnedBody is the exact body the frontend contract fixes for a job
// that does not exist or belongs to someone else. Flat shape, not the
// envelope.
const jobNotOwnedBody = "Job non trouvé ou non autorisé"

// respondServiceError translates shared service and webhook errors into the
// statuses the API contract fixes. Returns false when the error was not one
// of the shared kinds and the handler has to map it itself.
func respondServiceError(c *gin.Context, err error) bool {
	var upstream *n8n.UpstreamError
	switch {
	case errors.Is(err, services.ErrJobNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": jobNotOwnedBody})
	case errors.Is(err, services.ErrActionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "action not found"})
	case errors.Is(err, services.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
	case errors.Is(err, n8n.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "forecast service not configured"})
	case errors.Is(err, services.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upload storage not configured"})
	case errors.Is(err, n8n.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "forecast service timed out"})
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": "forecast service error"})
	default:
		return false
	}
	return true
}
