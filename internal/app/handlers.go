package app

import (
	"github.com/previsio/previsio-backend/internal/handlers"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Jobs        *handlers.JobsHandler
	Forecast    *handlers.ForecastHandler
	Series      *handlers.SeriesHandler
	Preferences *handlers.PreferencesHandler
	Actions     *handlers.ActionsHandler
	Chat        *handlers.ChatHandler
}

func wireHandlers(log *logger.Logger, serviceSet Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:        handlers.NewAuthHandler(serviceSet.Auth),
		User:        handlers.NewUserHandler(serviceSet.User),
		Jobs:        handlers.NewJobsHandler(log, serviceSet.Jobs, serviceSet.JobWatcher),
		Forecast:    handlers.NewForecastHandler(log, serviceSet.Forecast),
		Series:      handlers.NewSeriesHandler(serviceSet.Series),
		Preferences: handlers.NewPreferencesHandler(serviceSet.Preferences),
		Actions:     handlers.NewActionsHandler(serviceSet.Actions),
		Chat:        handlers.NewChatHandler(serviceSet.Chat),
	}
}
