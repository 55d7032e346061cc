package server

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/previsio/previsio-backend/internal/handlers"
	"github.com/previsio/previsio-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler        *handlers.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	UserHandler        *handlers.UserHandler
	JobsHandler        *handlers.JobsHandler
	ForecastHandler    *handlers.ForecastHandler
	SeriesHandler      *handlers.SeriesHandler
	PreferencesHandler *handlers.PreferencesHandler
	ActionsHandler     *handlers.ActionsHandler
	ChatHandler        *handlers.ChatHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("previsio-backend"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	api.POST("/logout", cfg.AuthHandler.Logout)

	api.GET("/user", cfg.UserHandler.GetMe)
	api.PUT("/user/plan", cfg.UserHandler.UpdatePlan)
	api.POST("/user/avatar", cfg.UserHandler.RegenerateAvatar)

	api.POST("/forecast/upload", cfg.ForecastHandler.Upload)
	api.POST("/forecast/run", cfg.ForecastHandler.Trigger)

	api.GET("/jobs", cfg.JobsHandler.List)
	api.GET("/jobs/:id", cfg.JobsHandler.GetByID)
	api.GET("/jobs/:id/watch", cfg.JobsHandler.Watch)
	api.GET("/jobs/:id/series", cfg.SeriesHandler.ListByJob)
	api.GET("/jobs/:id/actions", cfg.ActionsHandler.ListByJob)

	api.POST("/actions/:id/dismiss", cfg.ActionsHandler.Dismiss)
	api.POST("/actions/:id/resolve", cfg.ActionsHandler.Resolve)

	api.GET("/preferences", cfg.PreferencesHandler.Get)
	api.PUT("/preferences", cfg.PreferencesHandler.Update)

	api.POST("/chat", cfg.ChatHandler.Ask)

	return router
}

func allowedOrigins() []string {
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return []string{
		"http://localhost:80",
		"http://localhost:3000",
		"http://localhost:5173",
	}
}
