package streaks

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sistersync/sistersync-backend/internal/models"
	"gorm.io/gorm"
)

const dayLayout = "2006-01-02"

type StreakService struct {
	db *gorm.DB
}

func NewStreakService(db *gorm.DB) *StreakService {
	return &StreakService{db: db}
}

// GetProfile returns the user's profile, creating it lazily on first read.
func (s *StreakService) GetProfile(userName string) (*UserProfile, error) {
	return s.getOrCreate(userName)
}

// Touch applies one day's activity to the streak counters. The whole update
// is gated once per day: when LastActiveDate already equals the given date,
// nothing changes. Main streak keeps a 2-day grace period (one skipped day
// does not break it); sub-streaks increment when their threshold is met.
// All counters and the badge list persist in a single row save. A failed
// profile fetch performs no writes at all.
func (s *StreakService) Touch(userName, date string, isMovement bool, day DaySummary) error {
	today, err := time.Parse(dayLayout, date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	profile, err := s.getOrCreate(userName)
	if err != nil {
		return err
	}

	if profile.LastActiveDate != nil {
		last, parseErr := time.Parse(dayLayout, *profile.LastActiveDate)
		if parseErr == nil {
			diff := daysBetween(last, today)
			switch {
			case diff == 0:
				// Already counted today.
				return nil
			case diff < 0:
				// Backdated edit; the streak already moved past this day.
				return nil
			case diff == 1 || diff == 2:
				profile.StreakCount++
			default:
				profile.StreakCount = 1
			}
		} else {
			profile.StreakCount = 1
		}
	} else {
		profile.StreakCount = 1
	}

	if isMovement || day.ActivityCount > 0 {
		profile.MovementStreak++
	}
	if day.CaloriesConsumed > 0 {
		profile.MealStreak++
	}
	if day.Water >= WaterStreakLiters {
		profile.WaterStreak++
	}

	profile.LastActiveDate = &date

	unlocked := s.evaluateBadges(profile, isMovement)

	if err := s.db.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	for _, key := range unlocked {
		s.recordAchievement(userName, key)
	}

	return nil
}

// evaluateBadges appends any newly earned badge keys in fixed order and
// returns them. Idempotent: a key already present is never re-added.
func (s *StreakService) evaluateBadges(profile *UserProfile, isMovement bool) []string {
	milestones := []struct {
		min int
		key string
	}{
		{7, BadgeWeekRhythm},
		{14, BadgeFortnight},
		{30, BadgeMonthLifestyle},
	}

	var unlocked []string
	for _, m := range milestones {
		if profile.StreakCount >= m.min && !hasBadge(profile, m.key) {
			profile.UnlockedBadges = append(profile.UnlockedBadges, m.key)
			unlocked = append(unlocked, m.key)
		}
	}

	if isMovement && !hasBadge(profile, BadgeFirstWorkout) {
		profile.UnlockedBadges = append(profile.UnlockedBadges, BadgeFirstWorkout)
		unlocked = append(unlocked, BadgeFirstWorkout)
	}

	return unlocked
}

// recordAchievement writes the shared feed event for a badge unlock.
// Best effort: the badge itself is already persisted on the profile.
func (s *StreakService) recordAchievement(userName, key string) {
	achievement := models.SharedAchievement{
		ID:             uuid.New(),
		UserName:       userName,
		AchievementKey: key,
		Description:    fmt.Sprintf("%s unlocked %s", userName, key),
		UnlockedAt:     time.Now().UTC(),
	}
	if err := s.db.Create(&achievement).Error; err != nil {
		slog.Error("failed to record shared achievement", "user", userName, "badge", key, "error", err)
	}
}

// WeeklyInsights aggregates the last 7 logged days. Reads the daily_logs
// table directly; only scalar columns are needed.
func (s *StreakService) WeeklyInsights(userName string) (*WeeklyInsights, error) {
	type dayRow struct {
		Water            float64
		Steps            int
		CaloriesConsumed int
		CaloriesBurned   int
		CalorieTarget    int
	}

	var rows []dayRow
	err := s.db.Table("daily_logs").
		Select("water, steps, calories_consumed, calories_burned, calorie_target").
		Where("user_name = ?", userName).
		Order("date DESC").
		Limit(7).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent logs: %w", err)
	}

	profile, err := s.getOrCreate(userName)
	if err != nil {
		return nil, err
	}

	insights := &WeeklyInsights{
		DaysLogged: len(rows),
		Streaks: StreakData{
			Wellness: profile.StreakCount,
			Movement: profile.MovementStreak,
			Meal:     profile.MealStreak,
			Water:    profile.WaterStreak,
		},
		Badges: append([]string{}, profile.UnlockedBadges...),
	}

	if len(rows) == 0 {
		return insights, nil
	}

	totalWater := 0.0
	for _, r := range rows {
		totalWater += r.Water
		insights.TotalSteps += r.Steps
		net := r.CaloriesConsumed - r.CaloriesBurned
		if abs(net-r.CalorieTarget) <= 200 {
			insights.DaysOnTarget++
		}
	}
	insights.AvgWater = math.Round(totalWater/float64(len(rows))*10) / 10

	return insights, nil
}

func (s *StreakService) getOrCreate(userName string) (*UserProfile, error) {
	var profile UserProfile
	err := s.db.Where("user_name = ?", userName).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	profile = UserProfile{
		ID:             uuid.New(),
		UserName:       userName,
		UnlockedBadges: []string{},
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &profile, nil
}

func hasBadge(profile *UserProfile, key string) bool {
	for _, b := range profile.UnlockedBadges {
		if b == key {
			return true
		}
	}
	return false
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
