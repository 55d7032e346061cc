package app

import (
	"gorm.io/gorm"

	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/services"
)

type Services struct {
	Avatar      services.AvatarService
	Auth        services.AuthService
	User        services.UserService
	Jobs        services.JobService
	JobWatcher  services.JobWatcher
	Forecast    services.ForecastService
	Series      services.SeriesService
	Preferences services.PreferencesService
	Actions     services.ActionService
	Chat        services.ChatService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repoSet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	var avatarService services.AvatarService
	if clients.GcpBucket != nil {
		svc, err := services.NewAvatarService(log, clients.GcpBucket)
		if err != nil {
			log.Warn("avatar service unavailable", "error", err)
		} else {
			avatarService = svc
		}
	}

	authService := services.NewAuthService(
		db, log,
		repoSet.User, repoSet.UserToken,
		avatarService,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)

	jobService := services.NewJobService(db, log, repoSet.ForecastJob, clients.JobStatusCache)

	forecastDefaults := services.LoadForecastDefaults(log)

	return Services{
		Avatar:      avatarService,
		Auth:        authService,
		User:        services.NewUserService(db, log, repoSet.User, avatarService),
		Jobs:        jobService,
		JobWatcher:  services.NewJobWatcher(log, jobService),
		Forecast:    services.NewForecastService(db, log, repoSet.ForecastJob, clients.GcpBucket, clients.N8N, forecastDefaults),
		Series:      services.NewSeriesService(log, repoSet.ForecastJob, repoSet.SeriesResult),
		Preferences: services.NewPreferencesService(db, log, repoSet.UserPreferences),
		Actions:     services.NewActionService(log, repoSet.ForecastJob, repoSet.ForecastAction),
		Chat:        services.NewChatService(log, repoSet.ForecastJob, clients.N8N),
	}, nil
}
