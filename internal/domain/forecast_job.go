package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	JobStatusPending    = "pending"
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
	JobStatusCancelled  = "cancelled"
)

// ForecastJob is one uploaded file and its forecasting run. The row is
// inserted here with status pending; every later mutation (status, progress,
// metrics) belongs to the external pipeline.
type ForecastJob struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	Status         string         `gorm:"not null;default:pending;index;column:status" json:"status"`
	Progress       int            `gorm:"not null;default:0;column:progress" json:"progress"`
	InputPath      string         `gorm:"not null;column:input_path" json:"input_path"`
	Filename       string         `gorm:"not null;column:filename" json:"filename"`
	Plan           string         `gorm:"column:plan" json:"plan"`
	ConfigOverride datatypes.JSON `gorm:"column:config_override" json:"config_override,omitempty"`
	ErrorCode      string         `gorm:"column:error_code" json:"error_code,omitempty"`
	ErrorMessage   string         `gorm:"column:error_message" json:"error_message,omitempty"`

	// Summary metrics are ratios in [0,1], written by the pipeline into
	// numeric columns. They travel as strings and are coerced at the edge.
	AvgWAPE  string `gorm:"type:numeric(12,8);column:avg_wape" json:"avg_wape,omitempty"`
	AvgSMAPE string `gorm:"type:numeric(12,8);column:avg_smape" json:"avg_smape,omitempty"`
	AvgBias  string `gorm:"type:numeric(12,8);column:avg_bias" json:"avg_bias,omitempty"`

	SeriesCount int        `gorm:"not null;default:0;column:series_count" json:"series_count"`
	StartedAt   *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (ForecastJob) TableName() string {
	return "forecast_jobs"
}

func (j *ForecastJob) IsPending() bool {
	return j.Status == JobStatusPending || j.Status == JobStatusQueued
}
func (j *ForecastJob) IsProcessing() bool { return j.Status == JobStatusProcessing }
func (j *ForecastJob) IsComplete() bool   { return j.Status == JobStatusCompleted }
func (j *ForecastJob) IsFailed() bool     { return j.Status == JobStatusFailed }

func (j *ForecastJob) IsTerminal() bool {
	switch j.Status {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	default:
		return false
	}
}
