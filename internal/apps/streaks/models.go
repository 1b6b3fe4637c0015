package streaks

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserProfile carries the streak counters and badge set for one sister.
// Created lazily on first read. UnlockedBadges has set semantics: insertion
// order preserved, no duplicates, never removed.
type UserProfile struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserName       string                      `gorm:"size:50;not null;uniqueIndex" json:"user_name"`
	StreakCount    int                         `gorm:"default:0" json:"streak_count"`
	MovementStreak int                         `gorm:"default:0" json:"movement_streak"`
	MealStreak     int                         `gorm:"default:0" json:"meal_streak"`
	WaterStreak    int                         `gorm:"default:0" json:"water_streak"`
	LastActiveDate *string                     `gorm:"size:10" json:"last_active_date"`
	UnlockedBadges datatypes.JSONSlice[string] `json:"unlocked_badges"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// DaySummary is the slice of a daily log the engine reads for the
// sub-streak thresholds.
type DaySummary struct {
	CaloriesConsumed int
	Water            float64
	ActivityCount    int
}

// Badge keys, unlocked in this order.
const (
	BadgeWeekRhythm     = "7-day-rhythm"
	BadgeFortnight      = "14-day-balance"
	BadgeMonthLifestyle = "30-day-lifestyle"
	BadgeFirstWorkout   = "first-workout"
)

// WaterStreakLiters is the daily intake needed to credit the water streak.
const WaterStreakLiters = 2.5

// --- DTOs ---

type StreakData struct {
	Wellness int `json:"wellness"`
	Movement int `json:"movement"`
	Meal     int `json:"meal"`
	Water    int `json:"water"`
}

type WeeklyInsights struct {
	DaysLogged   int        `json:"days_logged"`
	AvgWater     float64    `json:"avg_water"`
	TotalSteps   int        `json:"total_steps"`
	DaysOnTarget int        `json:"days_on_target"`
	Streaks      StreakData `json:"streaks"`
	Badges       []string   `json:"badges"`
}
