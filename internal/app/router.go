package app

import (
	"github.com/gin-gonic/gin"

	"github.com/previsio/previsio-backend/internal/server"
)

func wireRouter(handlerSet Handlers, middlewareSet Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:        handlerSet.Auth,
		AuthMiddleware:     middlewareSet.Auth,
		UserHandler:        handlerSet.User,
		JobsHandler:        handlerSet.Jobs,
		ForecastHandler:    handlerSet.Forecast,
		SeriesHandler:      handlerSet.Series,
		PreferencesHandler: handlerSet.Preferences,
		ActionsHandler:     handlerSet.Actions,
		ChatHandler:        handlerSet.Chat,
	})
}
