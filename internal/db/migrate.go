package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/previsio/previsio-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// Identity + auth
		&domain.User{},
		&domain.UserToken{},

		// Forecasting surface
		&domain.ForecastJob{},
		&domain.SeriesResult{},
		&domain.UserPreferences{},
		&domain.ForecastAction{},
	)
}

func EnsureForecastIndexes(db *gorm.DB) error {
	// Poll path: job reads are always (id, user_id).
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_forecast_jobs_user_created
		ON forecast_jobs (user_id, created_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_forecast_jobs_user_created: %w", err)
	}

	// Series listing per job, worst offenders first.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_forecast_results_job_wape
		ON forecast_results (job_id, wape DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_forecast_results_job_wape: %w", err)
	}

	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_forecast_results_job_series
		ON forecast_results (job_id, series_key);
	`).Error; err != nil {
		return fmt.Errorf("create idx_forecast_results_job_series: %w", err)
	}

	// Active action listing per job.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_forecast_actions_job_status
		ON forecast_actions (job_id, status, priority);
	`).Error; err != nil {
		return fmt.Errorf("create idx_forecast_actions_job_status: %w", err)
	}

	return nil
}
