package models

import (
	"time"

	"github.com/google/uuid"
)

// SharedAchievement records a badge unlock so both sisters see it in the feed.
type SharedAchievement struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName       string    `gorm:"size:50;not null;index" json:"user_name"`
	AchievementKey string    `gorm:"size:50;not null" json:"achievement_key"`
	Description    string    `gorm:"type:text" json:"description"`
	UnlockedAt     time.Time `gorm:"not null;index" json:"unlocked_at"`
}
