package streaks

import (
	"fmt"
	"testing"

	"github.com/sistersync/sistersync-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&UserProfile{}, &models.SharedAchievement{}))
	return db
}

func TestTouchFirstEver(t *testing.T) {
	s := NewStreakService(setupTestDB(t))

	require.NoError(t, s.Touch("priya", "2026-03-10", false, DaySummary{}))

	profile, err := s.GetProfile("priya")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.StreakCount)
	require.NotNil(t, profile.LastActiveDate)
	assert.Equal(t, "2026-03-10", *profile.LastActiveDate)
}

func TestTouchConsecutiveDay(t *testing.T) {
	s := NewStreakService(setupTestDB(t))

	require.NoError(t, s.Touch("priya", "2026-03-10", false, DaySummary{}))
	require.NoError(t, s.Touch("priya", "2026-03-11", false, DaySummary{}))

	profile, _ := s.GetProfile("priya")
	assert.Equal(t, 2, profile.StreakCount)
}

func TestTouchGracePeriodKeepsStreak(t *testing.T) {
	s := NewStreakService(setupTestDB(t))

	require.NoError(t, s.Touch("priya", "2026-03-10", false, DaySummary{}))
	// One skipped day (the 11th) does not break the streak.
	require.NoError(t, s.Touch("priya", "2026-03-12", false, DaySummary{}))

	profile, _ := s.GetProfile("priya")
	assert.Equal(t, 2, profile.StreakCount)
}

func TestTouchLongGapResets(t *testing.T) {
	s := NewStreakService(setupTestDB(t))

	require.NoError(t, s.Touch("priya", "2026-03-10", false, DaySummary{}))
	require.NoError(t, s.Touch("priya", "2026-03-11", false, DaySummary{}))
	require.NoError(t, s.Touch("priya", "2026-03-15", false, DaySummary{}))

	profile, _ := s.GetProfile("priya")
	assert.Equal(t, 1, profile.StreakCount)
}

func TestTouchSameDayIsNoOp(t *testing.T) {
	s := NewStreakService(setupTestDB(t))

	day := DaySummary{CaloriesConsumed: 500, Water: 3.0}
	require.NoError(t, s.Touch("priya", "2026-03-10", true, day))
	// Second touch on the same date must not move any counter.
	require.NoError(t, s.Touch("priya", "2026-03-10", true, day))

	profile, _ := s.GetProfile("priya")
	assert.Equal(t, 1, profile.StreakCount)
	assert.Equal(t, 1, profile.MovementStreak)
	assert.Equal(t, 1, profile.MealStreak)
	assert.Equal(t, 1, profile.WaterStreak)
}

func TestTouchBackdatedEditIsNoOp(t *testing.T) {
	s := NewStreakService(setupTestDB(t))

	require.NoError(t, s.Touch("priya", "2026-03-10", false, DaySummary{}))
	require.NoError(t, s.Touch("priya", "2026-03-11", false, DaySummary{}))
	// Editing an older day must not disturb the streak.
	require.NoError(t, s.Touch("priya", "2026-03-08", true, DaySummary{Water: 3.0}))

	profile, _ := s.GetProfile("priya")
	assert.Equal(t, 2, profile.StreakCount)
	assert.Equal(t, 0, profile.WaterStreak)
	assert.Equal(t, "2026-03-11", *profile.LastActiveDate)
}

func TestTouchSubStreakThresholds(t *testing.T) {
	s := NewStreakService(setupTestDB(t))

	// Below every threshold: only the main streak moves.
	require.NoError(t, s.Touch("priya", "2026-03-10", false, DaySummary{Water: 2.0}))

	profile, _ := s.GetProfile("priya")
	assert.Equal(t, 1, profile.StreakCount)
	assert.Equal(t, 0, profile.MovementStreak)
	assert.Equal(t, 0, profile.MealStreak)
	assert.Equal(t, 0, profile.WaterStreak)

	// Next day meets all three.
	day := DaySummary{CaloriesConsumed: 300, Water: 2.5, ActivityCount: 1}
	require.NoError(t, s.Touch("priya", "2026-03-11", false, day))

	profile, _ = s.GetProfile("priya")
	assert.Equal(t, 1, profile.MovementStreak)
	assert.Equal(t, 1, profile.MealStreak)
	assert.Equal(t, 1, profile.WaterStreak)
}

func TestTouchBadgeUnlockAndSharedEvent(t *testing.T) {
	db := setupTestDB(t)
	s := NewStreakService(db)

	for i := 0; i < 7; i++ {
		date := fmt.Sprintf("2026-03-%02d", 10+i)
		require.NoError(t, s.Touch("priya", date, false, DaySummary{}))
	}

	profile, _ := s.GetProfile("priya")
	assert.Equal(t, 7, profile.StreakCount)
	assert.Contains(t, []string(profile.UnlockedBadges), BadgeWeekRhythm)

	var count int64
	db.Model(&models.SharedAchievement{}).
		Where("user_name = ? AND achievement_key = ?", "priya", BadgeWeekRhythm).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBadgeNotDuplicated(t *testing.T) {
	db := setupTestDB(t)
	s := NewStreakService(db)

	for i := 0; i < 9; i++ {
		date := fmt.Sprintf("2026-03-%02d", 10+i)
		require.NoError(t, s.Touch("priya", date, false, DaySummary{}))
	}

	profile, _ := s.GetProfile("priya")
	badges := []string(profile.UnlockedBadges)
	seen := 0
	for _, b := range badges {
		if b == BadgeWeekRhythm {
			seen++
		}
	}
	assert.Equal(t, 1, seen)
}

func TestFirstWorkoutBadge(t *testing.T) {
	s := NewStreakService(setupTestDB(t))

	require.NoError(t, s.Touch("priya", "2026-03-10", true, DaySummary{ActivityCount: 1}))

	profile, _ := s.GetProfile("priya")
	assert.Contains(t, []string(profile.UnlockedBadges), BadgeFirstWorkout)
}

func TestWeeklyInsights(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&testDailyLog{}))
	s := NewStreakService(db)

	rows := []testDailyLog{
		{UserName: "priya", Date: "2026-03-10", Water: 2.0, Steps: 5000, CaloriesConsumed: 1600, CaloriesBurned: 100, CalorieTarget: 1500},
		{UserName: "priya", Date: "2026-03-11", Water: 3.0, Steps: 7000, CaloriesConsumed: 2400, CaloriesBurned: 100, CalorieTarget: 1500},
		{UserName: "anu", Date: "2026-03-11", Water: 1.0, Steps: 900, CaloriesConsumed: 800, CaloriesBurned: 0, CalorieTarget: 1500},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	insights, err := s.WeeklyInsights("priya")
	require.NoError(t, err)

	assert.Equal(t, 2, insights.DaysLogged)
	assert.Equal(t, 12000, insights.TotalSteps)
	assert.Equal(t, 2.5, insights.AvgWater)
	// Only the first day lands within 200 kcal of target.
	assert.Equal(t, 1, insights.DaysOnTarget)
}

func TestWeeklyInsightsEmpty(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&testDailyLog{}))
	s := NewStreakService(db)

	insights, err := s.WeeklyInsights("priya")
	require.NoError(t, err)

	assert.Equal(t, 0, insights.DaysLogged)
	assert.Equal(t, 0.0, insights.AvgWater)
}

// testDailyLog mirrors the scalar columns of daily_logs that the insight
// query reads, so the tests stay free of a cross-package dependency.
type testDailyLog struct {
	ID               int    `gorm:"primaryKey;autoIncrement"`
	UserName         string `gorm:"size:50"`
	Date             string `gorm:"size:10"`
	Water            float64
	Steps            int
	CaloriesConsumed int
	CaloriesBurned   int
	CalorieTarget    int
}

func (testDailyLog) TableName() string { return "daily_logs" }
