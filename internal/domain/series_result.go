package domain

import (
	"time"

	"github.com/google/uuid"
)

// SeriesResult is one forecasted time series inside a job, produced entirely
// by the external pipeline and read-only here.
type SeriesResult struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID     uuid.UUID `gorm:"type:uuid;index;not null;column:job_id" json:"job_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	SeriesKey string    `gorm:"not null;column:series_key" json:"series_key"`
	Product   string    `gorm:"column:product" json:"product"`

	// Pandas-style frequency code of the source series ("W", "7D", "MS", ...).
	Frequency string `gorm:"column:frequency" json:"frequency"`

	WAPE  string `gorm:"type:numeric(12,8);column:wape" json:"wape"`
	SMAPE string `gorm:"type:numeric(12,8);column:smape" json:"smape"`
	MASE  string `gorm:"type:numeric(12,8);column:mase" json:"mase"`
	Bias  string `gorm:"type:numeric(12,8);column:bias" json:"bias"`

	ChampionModel string `gorm:"column:champion_model" json:"champion_model"`
	ABCClass      string `gorm:"column:abc_class" json:"abc_class"`
	XYZClass      string `gorm:"column:xyz_class" json:"xyz_class"`

	DriftDetected bool `gorm:"not null;default:false;column:drift_detected" json:"drift_detected"`
	FirstRun      bool `gorm:"not null;default:false;column:first_run" json:"first_run"`
	ModelChanged  bool `gorm:"not null;default:false;column:model_changed" json:"model_changed"`
	Gated         bool `gorm:"not null;default:false;column:gated" json:"gated"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SeriesResult) TableName() string {
	return "forecast_results"
}
