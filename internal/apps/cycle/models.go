package cycle

import (
	"time"

	"github.com/google/uuid"
)

// CycleSettings is per-user and optional; it backs cycle-day derivation for
// logs that have none.
type CycleSettings struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName        string    `gorm:"size:50;not null;uniqueIndex" json:"user_name"`
	LastPeriodStart *string   `gorm:"size:10" json:"last_period_start"`
	PeriodDuration  int       `gorm:"default:5" json:"period_duration"`
	CycleLength     int       `gorm:"default:28" json:"cycle_length"`
	IsRegular       string    `gorm:"size:20" json:"is_regular"`
	TrackingGoal    string    `gorm:"size:50" json:"tracking_goal"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SaveSettingsRequest is a partial update: nil fields are left untouched.
type SaveSettingsRequest struct {
	LastPeriodStart *string `json:"last_period_start"`
	PeriodDuration  *int    `json:"period_duration"`
	CycleLength     *int    `json:"cycle_length"`
	IsRegular       *string `json:"is_regular"`
	TrackingGoal    *string `json:"tracking_goal"`
}
