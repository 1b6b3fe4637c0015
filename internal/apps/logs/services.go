package logs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sistersync/sistersync-backend/internal/apps/coach"
	"github.com/sistersync/sistersync-backend/internal/apps/streaks"
	"github.com/sistersync/sistersync-backend/internal/config"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMealType  = errors.New("invalid meal type")
	ErrInvalidCraving   = errors.New("invalid sugar craving level")
	ErrEmptyDescription = errors.New("meal description is required")
	ErrInvalidDuration  = errors.New("duration must be positive")
	ErrMealNotFound     = errors.New("meal not found")
	ErrActivityNotFound = errors.New("activity not found")
)

// StreakEngine is notified after every meaningful write. Failures are logged
// and swallowed: a missed streak credit never fails the write.
type StreakEngine interface {
	Touch(userName, date string, isMovement bool, day streaks.DaySummary) error
}

// ChangeNotifier signals connected clients that a user's data changed; they
// refetch rather than merge.
type ChangeNotifier interface {
	Broadcast(userName, event string)
}

// CycleDayDeriver back-derives a cycle day from the user's cycle settings
// when the log has none.
type CycleDayDeriver interface {
	DeriveCycleDay(userName, date string) (int, bool)
}

type LogService struct {
	db       *gorm.DB
	cfg      *config.Config
	streaks  StreakEngine
	notifier ChangeNotifier
	cycle    CycleDayDeriver
}

// NewLogService wires the log store. streaks, notifier, and cycle may be nil
// (tests, partial wiring); the service degrades to plain CRUD.
func NewLogService(db *gorm.DB, cfg *config.Config, streakEngine StreakEngine, notifier ChangeNotifier, cycle CycleDayDeriver) *LogService {
	return &LogService{db: db, cfg: cfg, streaks: streakEngine, notifier: notifier, cycle: cycle}
}

func (s *LogService) readCtx() (context.Context, context.CancelFunc) {
	timeout := 5 * time.Second
	if s.cfg != nil && s.cfg.QueryTimeout > 0 {
		timeout = s.cfg.QueryTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// GetLog returns the log for (user, date) with children preloaded, or nil if
// none exists. Read timeouts are treated the same as "no data".
func (s *LogService) GetLog(userName, date string) (*DailyLog, error) {
	if !validDay(date) {
		return nil, ErrInvalidDate
	}

	ctx, cancel := s.readCtx()
	defer cancel()

	var log DailyLog
	err := s.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Activities", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("user_name = ? AND date = ?", userName, date).
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, context.DeadlineExceeded) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch log: %w", err)
	}

	if log.CycleDay == nil && s.cycle != nil {
		if day, ok := s.cycle.DeriveCycleDay(userName, date); ok {
			log.CycleDay = &day
		}
	}

	return &log, nil
}

// SaveLog upserts the log for (user, date), applying only the fields present
// in the request.
func (s *LogService) SaveLog(userName, date string, req SaveLogRequest) (*DailyLog, error) {
	if !validDay(date) {
		return nil, ErrInvalidDate
	}
	if req.SugarCravings != nil && !contains(CravingLevels, *req.SugarCravings) {
		return nil, ErrInvalidCraving
	}

	log, err := s.getOrCreate(userName, date)
	if err != nil {
		return nil, err
	}

	applyPartial(log, req)

	if err := s.db.Save(log).Error; err != nil {
		return nil, fmt.Errorf("failed to save log: %w", err)
	}

	s.touchStreaks(userName, date, false)
	s.broadcast(userName, "log_updated")

	return s.GetLog(userName, date)
}

// GetHistory returns up to `days` most recent logs, newest first. Timeouts
// degrade to an empty history.
func (s *LogService) GetHistory(userName string, days int) ([]DailyLog, error) {
	if days < 1 || days > 90 {
		days = 7
	}

	ctx, cancel := s.readCtx()
	defer cancel()

	var logs []DailyLog
	err := s.db.WithContext(ctx).
		Preload("Meals").
		Preload("Activities").
		Where("user_name = ?", userName).
		Order("date DESC").
		Limit(days).
		Find(&logs).Error
	if errors.Is(err, context.DeadlineExceeded) {
		return []DailyLog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return logs, nil
}

// AddMeal creates a meal under the day's log (created lazily), pricing it via
// the keyword engine, then recomputes the parent totals.
func (s *LogService) AddMeal(userName, date string, req AddMealRequest) (*Meal, error) {
	if !validDay(date) {
		return nil, ErrInvalidDate
	}
	if !contains(MealTypes, req.Type) {
		return nil, ErrInvalidMealType
	}
	if req.Description == "" {
		return nil, ErrEmptyDescription
	}

	log, err := s.getOrCreate(userName, date)
	if err != nil {
		return nil, err
	}

	meal := Meal{
		ID:          uuid.New(),
		LogID:       log.ID,
		Type:        req.Type,
		Description: req.Description,
		Calories:    coach.EstimateCalories(req.Description).Total,
		HasRice:     req.HasRice,
		IsNonVeg:    req.IsNonVeg,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meal).Error; err != nil {
			return err
		}
		return s.recomputeTotals(tx, log.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add meal: %w", err)
	}

	s.touchStreaks(userName, date, false)
	s.broadcast(userName, "meal_added")

	return &meal, nil
}

func (s *LogService) UpdateMeal(userName string, mealID uuid.UUID, req UpdateMealRequest) (*Meal, error) {
	meal, log, err := s.findOwnedMeal(userName, mealID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !contains(MealTypes, *req.Type) {
			return nil, ErrInvalidMealType
		}
		meal.Type = *req.Type
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, ErrEmptyDescription
		}
		meal.Description = *req.Description
		meal.Calories = coach.EstimateCalories(*req.Description).Total
	}
	if req.HasRice != nil {
		meal.HasRice = *req.HasRice
	}
	if req.IsNonVeg != nil {
		meal.IsNonVeg = *req.IsNonVeg
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(meal).Error; err != nil {
			return err
		}
		return s.recomputeTotals(tx, log.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update meal: %w", err)
	}

	s.broadcast(userName, "meal_updated")
	return meal, nil
}

func (s *LogService) DeleteMeal(userName string, mealID uuid.UUID) error {
	meal, log, err := s.findOwnedMeal(userName, mealID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(meal).Error; err != nil {
			return err
		}
		return s.recomputeTotals(tx, log.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	s.broadcast(userName, "meal_deleted")
	return nil
}

// AddActivity creates an activity under the day's log. Burn is estimated from
// the MET table and the day's logged body weight (default when absent).
func (s *LogService) AddActivity(userName, date string, req AddActivityRequest) (*Activity, error) {
	if !validDay(date) {
		return nil, ErrInvalidDate
	}
	if req.Type == "" {
		return nil, ErrEmptyDescription
	}
	if req.DurationMins <= 0 {
		return nil, ErrInvalidDuration
	}

	log, err := s.getOrCreate(userName, date)
	if err != nil {
		return nil, err
	}

	activity := Activity{
		ID:             uuid.New(),
		LogID:          log.ID,
		Type:           req.Type,
		DurationMins:   req.DurationMins,
		CaloriesBurned: coach.EstimateBurned(req.Type, req.DurationMins, s.bodyWeight(log)),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		return s.recomputeTotals(tx, log.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add activity: %w", err)
	}

	s.touchStreaks(userName, date, true)
	s.broadcast(userName, "activity_added")

	return &activity, nil
}

func (s *LogService) UpdateActivity(userName string, activityID uuid.UUID, req UpdateActivityRequest) (*Activity, error) {
	activity, log, err := s.findOwnedActivity(userName, activityID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if *req.Type == "" {
			return nil, ErrEmptyDescription
		}
		activity.Type = *req.Type
	}
	if req.DurationMins != nil {
		if *req.DurationMins <= 0 {
			return nil, ErrInvalidDuration
		}
		activity.DurationMins = *req.DurationMins
	}
	activity.CaloriesBurned = coach.EstimateBurned(activity.Type, activity.DurationMins, s.bodyWeight(log))

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(activity).Error; err != nil {
			return err
		}
		return s.recomputeTotals(tx, log.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	s.broadcast(userName, "activity_updated")
	return activity, nil
}

func (s *LogService) DeleteActivity(userName string, activityID uuid.UUID) error {
	activity, log, err := s.findOwnedActivity(userName, activityID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(activity).Error; err != nil {
			return err
		}
		return s.recomputeTotals(tx, log.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	s.broadcast(userName, "activity_deleted")
	return nil
}

// Snapshot implements the coach's snapshot provider. A missing log yields an
// empty day with the default target.
func (s *LogService) Snapshot(userName, date string) (coach.Snapshot, error) {
	target := 1500
	if s.cfg != nil {
		target = s.cfg.DefaultCalorieTarget
	}

	log, err := s.GetLog(userName, date)
	if err != nil {
		return coach.Snapshot{Target: target}, err
	}
	if log == nil {
		return coach.Snapshot{Target: target}, nil
	}

	return coach.Snapshot{
		Consumed:      log.CaloriesConsumed,
		Burned:        log.CaloriesBurned,
		Target:        log.CalorieTarget,
		Water:         log.Water,
		Steps:         log.Steps,
		IsPeriod:      log.IsPeriod,
		IsSick:        log.IsSick,
		SickNotes:     log.SickNotes,
		SugarCravings: log.SugarCravings,
	}, nil
}

// getOrCreate fetches the day's log, creating it lazily. A fresh log's
// calorie target is derived from the most recent logged body weight when one
// exists.
func (s *LogService) getOrCreate(userName, date string) (*DailyLog, error) {
	var log DailyLog
	err := s.db.Where("user_name = ? AND date = ?", userName, date).First(&log).Error
	if err == nil {
		return &log, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch log: %w", err)
	}

	log = DailyLog{
		ID:            uuid.New(),
		UserName:      userName,
		Date:          date,
		SugarCravings: "None",
		CalorieTarget: s.seedCalorieTarget(userName),
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, fmt.Errorf("failed to create log: %w", err)
	}
	return &log, nil
}

func (s *LogService) seedCalorieTarget(userName string) int {
	target := 1500
	if s.cfg != nil {
		target = s.cfg.DefaultCalorieTarget
	}

	var prev DailyLog
	err := s.db.Where("user_name = ? AND weight IS NOT NULL", userName).
		Order("date DESC").
		First(&prev).Error
	if err == nil && prev.Weight != nil && *prev.Weight > 0 {
		return coach.CalorieTarget(*prev.Weight, "medium")
	}
	return target
}

func (s *LogService) bodyWeight(log *DailyLog) float64 {
	if log.Weight != nil && *log.Weight > 0 {
		return *log.Weight
	}
	if s.cfg != nil && s.cfg.DefaultBodyWeightKg > 0 {
		return s.cfg.DefaultBodyWeightKg
	}
	return coach.DefaultBodyWeightKg
}

// recomputeTotals rewrites the derived totals as exact sums over the
// surviving children. Running inside the same transaction as the child write
// keeps the cache from ever drifting.
func (s *LogService) recomputeTotals(tx *gorm.DB, logID uuid.UUID) error {
	var consumed int64
	if err := tx.Model(&Meal{}).Where("log_id = ?", logID).
		Select("COALESCE(SUM(calories), 0)").Scan(&consumed).Error; err != nil {
		return err
	}

	var burned int64
	if err := tx.Model(&Activity{}).Where("log_id = ?", logID).
		Select("COALESCE(SUM(calories_burned), 0)").Scan(&burned).Error; err != nil {
		return err
	}

	return tx.Model(&DailyLog{}).Where("id = ?", logID).Updates(map[string]interface{}{
		"calories_consumed": consumed,
		"calories_burned":   burned,
	}).Error
}

func (s *LogService) findOwnedMeal(userName string, mealID uuid.UUID) (*Meal, *DailyLog, error) {
	var meal Meal
	if err := s.db.First(&meal, "id = ?", mealID).Error; err != nil {
		return nil, nil, ErrMealNotFound
	}

	var log DailyLog
	if err := s.db.Where("id = ? AND user_name = ?", meal.LogID, userName).First(&log).Error; err != nil {
		return nil, nil, ErrMealNotFound
	}

	return &meal, &log, nil
}

func (s *LogService) findOwnedActivity(userName string, activityID uuid.UUID) (*Activity, *DailyLog, error) {
	var activity Activity
	if err := s.db.First(&activity, "id = ?", activityID).Error; err != nil {
		return nil, nil, ErrActivityNotFound
	}

	var log DailyLog
	if err := s.db.Where("id = ? AND user_name = ?", activity.LogID, userName).First(&log).Error; err != nil {
		return nil, nil, ErrActivityNotFound
	}

	return &activity, &log, nil
}

// touchStreaks reloads the day's fresh totals and hands them to the streak
// engine. Any failure is a local no-op beyond a missed streak credit.
func (s *LogService) touchStreaks(userName, date string, isMovement bool) {
	if s.streaks == nil {
		return
	}

	var log DailyLog
	if err := s.db.Preload("Activities").
		Where("user_name = ? AND date = ?", userName, date).
		First(&log).Error; err != nil {
		slog.Error("streak update skipped: log fetch failed", "user", userName, "error", err)
		return
	}

	day := streaks.DaySummary{
		CaloriesConsumed: log.CaloriesConsumed,
		Water:            log.Water,
		ActivityCount:    len(log.Activities),
	}
	if err := s.streaks.Touch(userName, date, isMovement, day); err != nil {
		slog.Error("streak update failed", "user", userName, "error", err)
	}
}

func (s *LogService) broadcast(userName, event string) {
	if s.notifier != nil {
		s.notifier.Broadcast(userName, event)
	}
}

func applyPartial(log *DailyLog, req SaveLogRequest) {
	if req.Water != nil {
		log.Water = *req.Water
	}
	if req.Steps != nil {
		log.Steps = *req.Steps
	}
	if req.Mood != nil {
		log.Mood = *req.Mood
	}
	if req.FlowLevel != nil {
		log.FlowLevel = *req.FlowLevel
	}
	if req.Symptoms != nil {
		log.Symptoms = datatypes.NewJSONSlice(*req.Symptoms)
	}
	if req.SugarCravings != nil {
		log.SugarCravings = *req.SugarCravings
	}
	if req.Waist != nil {
		log.Waist = req.Waist
	}
	if req.Weight != nil {
		log.Weight = req.Weight
	}
	if req.CycleDay != nil {
		log.CycleDay = req.CycleDay
	}
	if req.IsPeriod != nil {
		log.IsPeriod = *req.IsPeriod
	}
	if req.IsSick != nil {
		log.IsSick = *req.IsSick
	}
	if req.SickNotes != nil {
		log.SickNotes = *req.SickNotes
	}
	if req.CalorieTarget != nil && *req.CalorieTarget > 0 {
		log.CalorieTarget = *req.CalorieTarget
	}
}

func validDay(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
