package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultHorizon         = 12
	DefaultGatingEnabled   = true
	DefaultConfidenceLevel = 0.95
)

type UserPreferences struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:user_id" json:"user_id"`
	Horizon         int       `gorm:"not null;default:12;column:horizon" json:"horizon"`
	GatingEnabled   bool      `gorm:"not null;default:true;column:gating_enabled" json:"gating_enabled"`
	ConfidenceLevel float64   `gorm:"not null;default:0.95;column:confidence_level" json:"confidence_level"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

func DefaultUserPreferences(userID uuid.UUID) *UserPreferences {
	return &UserPreferences{
		ID:              uuid.New(),
		UserID:          userID,
		Horizon:         DefaultHorizon,
		GatingEnabled:   DefaultGatingEnabled,
		ConfidenceLevel: DefaultConfidenceLevel,
	}
}
