package app

import (
	"github.com/previsio/previsio-backend/internal/middleware"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, serviceSet Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, serviceSet.Auth),
	}
}
