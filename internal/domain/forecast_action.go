package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionStatusActive    = "active"
	ActionStatusDismissed = "dismissed"
	ActionStatusResolved  = "resolved"

	ActionPriorityHigh   = "high"
	ActionPriorityMedium = "medium"
	ActionPriorityLow    = "low"
)

// ForecastAction is an advisory recommendation tied to a job/series. Rows are
// produced by the pipeline; the UI only dismisses or resolves them.
type ForecastAction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID     uuid.UUID `gorm:"type:uuid;index;not null;column:job_id" json:"job_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	SeriesKey string    `gorm:"column:series_key" json:"series_key"`
	Priority  string    `gorm:"not null;default:medium;column:priority" json:"priority"`
	Trend     string    `gorm:"column:trend" json:"trend"`
	Status    string    `gorm:"not null;default:active;index;column:status" json:"status"`
	Title     string    `gorm:"not null;column:title" json:"title"`
	Detail    string    `gorm:"column:detail" json:"detail"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ForecastAction) TableName() string {
	return "forecast_actions"
}
