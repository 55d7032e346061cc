package app

import (
	"gorm.io/gorm"

	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/repos"
)

type Repos struct {
	User            repos.UserRepo
	UserToken       repos.UserTokenRepo
	ForecastJob     repos.ForecastJobRepo
	SeriesResult    repos.SeriesResultRepo
	UserPreferences repos.UserPreferencesRepo
	ForecastAction  repos.ForecastActionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:            repos.NewUserRepo(db, log),
		UserToken:       repos.NewUserTokenRepo(db, log),
		ForecastJob:     repos.NewForecastJobRepo(db, log),
		SeriesResult:    repos.NewSeriesResultRepo(db, log),
		UserPreferences: repos.NewUserPreferencesRepo(db, log),
		ForecastAction:  repos.NewForecastActionRepo(db, log),
	}
}
