package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is one of the two account holders. Name doubles as the owner key for
// all wellness tables (daily_logs, user_profiles, cycle_settings), matching
// the persisted schema which is keyed by user_name rather than user id.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
