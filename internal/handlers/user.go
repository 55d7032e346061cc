package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/pkg/ctxutil"
	"github.com/previsio/previsio-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// callerID pulls the authenticated user out of the request context. The auth
// middleware rejects requests before they get here, so a miss is a wiring bug.
func callerID(c *gin.Context) (uuid.UUID, string, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
		return uuid.Nil, "", false
	}
	return rd.UserID, rd.Plan, true
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	userID, _, ok := callerID(c)
	if !ok {
		return
	}
	user, err := uh.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "user_lookup_failed", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	RespondOK(c, user)
}

func (uh *UserHandler) UpdatePlan(c *gin.Context) {
	userID, _, ok := callerID(c)
	if !ok {
		return
	}
	var req struct {
		Plan string `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := uh.userService.UpdatePlan(c.Request.Context(), userID, req.Plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}

// POST /api/user/avatar regenerates the initials avatar, e.g. after a name
// change.
func (uh *UserHandler) RegenerateAvatar(c *gin.Context) {
	userID, _, ok := callerID(c)
	if !ok {
		return
	}
	user, err := uh.userService.RegenerateAvatar(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "avatar_generation_failed", err)
		return
	}
	RespondOK(c, gin.H{"avatar_url": user.AvatarURL})
}
