package logs

import (
	"testing"
	"time"

	"github.com/sistersync/sistersync-backend/internal/apps/streaks"
	"github.com/sistersync/sistersync-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeStreakEngine struct {
	calls []struct {
		date       string
		isMovement bool
	}
}

func (f *fakeStreakEngine) Touch(userName, date string, isMovement bool, day streaks.DaySummary) error {
	f.calls = append(f.calls, struct {
		date       string
		isMovement bool
	}{date, isMovement})
	return nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) Broadcast(userName, event string) {
	f.events = append(f.events, event)
}

func testConfig() *config.Config {
	return &config.Config{
		QueryTimeout:         5 * time.Second,
		DefaultCalorieTarget: 1500,
		DefaultBodyWeightKg:  65,
	}
}

func setupService(t *testing.T) (*LogService, *fakeStreakEngine, *fakeNotifier) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&DailyLog{}, &Meal{}, &Activity{}))

	engine := &fakeStreakEngine{}
	notifier := &fakeNotifier{}
	return NewLogService(db, testConfig(), engine, notifier, nil), engine, notifier
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestSaveAndGetLogRoundTrip(t *testing.T) {
	s, _, _ := setupService(t)

	saved, err := s.SaveLog("priya", "2026-03-10", SaveLogRequest{
		Water: floatPtr(2.5),
		Steps: intPtr(8000),
		Mood:  strPtr("Happy"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, saved.Water)

	got, err := s.GetLog("priya", "2026-03-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 8000, got.Steps)
	assert.Equal(t, "Happy", got.Mood)
}

func TestSaveLogIsPartial(t *testing.T) {
	s, _, _ := setupService(t)

	_, err := s.SaveLog("priya", "2026-03-10", SaveLogRequest{Water: floatPtr(2.0), Steps: intPtr(4000)})
	require.NoError(t, err)

	// Updating one field must not clobber the others.
	_, err = s.SaveLog("priya", "2026-03-10", SaveLogRequest{Steps: intPtr(9000)})
	require.NoError(t, err)

	got, _ := s.GetLog("priya", "2026-03-10")
	assert.Equal(t, 2.0, got.Water)
	assert.Equal(t, 9000, got.Steps)
}

func TestGetLogMissingReturnsNil(t *testing.T) {
	s, _, _ := setupService(t)

	got, err := s.GetLog("priya", "2026-03-10")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveLogRejectsBadInput(t *testing.T) {
	s, _, _ := setupService(t)

	_, err := s.SaveLog("priya", "10-03-2026", SaveLogRequest{})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = s.SaveLog("priya", "2026-03-10", SaveLogRequest{SugarCravings: strPtr("Extreme")})
	assert.ErrorIs(t, err, ErrInvalidCraving)
}

func TestAddMealPricesAndRecomputes(t *testing.T) {
	s, _, notifier := setupService(t)

	meal, err := s.AddMeal("priya", "2026-03-10", AddMealRequest{Type: "Breakfast", Description: "dosa"})
	require.NoError(t, err)
	assert.Equal(t, 120, meal.Calories)

	_, err = s.AddMeal("priya", "2026-03-10", AddMealRequest{Type: "Lunch", Description: "rice and dal"})
	require.NoError(t, err)

	log, _ := s.GetLog("priya", "2026-03-10")
	assert.Equal(t, 470, log.CaloriesConsumed)
	assert.Contains(t, notifier.events, "meal_added")
}

func TestAddMealRejectsBadType(t *testing.T) {
	s, _, _ := setupService(t)

	_, err := s.AddMeal("priya", "2026-03-10", AddMealRequest{Type: "Brunch", Description: "dosa"})
	assert.ErrorIs(t, err, ErrInvalidMealType)
}

func TestDeleteMealRecomputesExactSum(t *testing.T) {
	s, _, _ := setupService(t)

	first, err := s.AddMeal("priya", "2026-03-10", AddMealRequest{Type: "Breakfast", Description: "dosa"})
	require.NoError(t, err)
	_, err = s.AddMeal("priya", "2026-03-10", AddMealRequest{Type: "Lunch", Description: "rice"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteMeal("priya", first.ID))

	log, _ := s.GetLog("priya", "2026-03-10")
	assert.Equal(t, 200, log.CaloriesConsumed)
	assert.Len(t, log.Meals, 1)
}

func TestUpdateMealReprices(t *testing.T) {
	s, _, _ := setupService(t)

	meal, err := s.AddMeal("priya", "2026-03-10", AddMealRequest{Type: "Breakfast", Description: "dosa"})
	require.NoError(t, err)

	updated, err := s.UpdateMeal("priya", meal.ID, UpdateMealRequest{Description: strPtr("masala dosa")})
	require.NoError(t, err)
	assert.Equal(t, 250, updated.Calories)

	log, _ := s.GetLog("priya", "2026-03-10")
	assert.Equal(t, 250, log.CaloriesConsumed)
}

func TestMealOwnershipEnforced(t *testing.T) {
	s, _, _ := setupService(t)

	meal, err := s.AddMeal("priya", "2026-03-10", AddMealRequest{Type: "Breakfast", Description: "dosa"})
	require.NoError(t, err)

	// The other sister sees the meal in the feed but cannot touch it.
	_, err = s.UpdateMeal("anu", meal.ID, UpdateMealRequest{Description: strPtr("idli")})
	assert.ErrorIs(t, err, ErrMealNotFound)
	assert.ErrorIs(t, s.DeleteMeal("anu", meal.ID), ErrMealNotFound)
}

func TestAddActivityUsesLoggedWeight(t *testing.T) {
	s, engine, _ := setupService(t)

	_, err := s.SaveLog("priya", "2026-03-10", SaveLogRequest{Weight: floatPtr(70)})
	require.NoError(t, err)

	activity, err := s.AddActivity("priya", "2026-03-10", AddActivityRequest{Type: "Walk", DurationMins: 30})
	require.NoError(t, err)
	// 3.5 MET x 3.5 x 70kg / 200 x 30min
	assert.Equal(t, 129, activity.CaloriesBurned)

	log, _ := s.GetLog("priya", "2026-03-10")
	assert.Equal(t, 129, log.CaloriesBurned)

	// The streak engine saw a movement day.
	require.NotEmpty(t, engine.calls)
	last := engine.calls[len(engine.calls)-1]
	assert.True(t, last.isMovement)
}

func TestAddActivityValidation(t *testing.T) {
	s, _, _ := setupService(t)

	_, err := s.AddActivity("priya", "2026-03-10", AddActivityRequest{Type: "Walk", DurationMins: 0})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = s.AddActivity("priya", "2026-03-10", AddActivityRequest{Type: "", DurationMins: 30})
	assert.ErrorIs(t, err, ErrEmptyDescription)
}

func TestGetHistoryNewestFirst(t *testing.T) {
	s, _, _ := setupService(t)

	for _, date := range []string{"2026-03-08", "2026-03-09", "2026-03-10"} {
		_, err := s.SaveLog("priya", date, SaveLogRequest{Water: floatPtr(1.0)})
		require.NoError(t, err)
	}

	logs, err := s.GetHistory("priya", 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "2026-03-10", logs[0].Date)
	assert.Equal(t, "2026-03-09", logs[1].Date)
}

func TestSeedCalorieTargetFromLatestWeight(t *testing.T) {
	s, _, _ := setupService(t)

	_, err := s.SaveLog("priya", "2026-03-09", SaveLogRequest{Weight: floatPtr(65)})
	require.NoError(t, err)

	log, err := s.SaveLog("priya", "2026-03-10", SaveLogRequest{Water: floatPtr(1.0)})
	require.NoError(t, err)
	// 65 x 22 x 1.2 x 0.8
	assert.Equal(t, 1373, log.CalorieTarget)
}

func TestSnapshotForCoach(t *testing.T) {
	s, _, _ := setupService(t)

	snap, err := s.Snapshot("priya", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 1500, snap.Target)
	assert.Equal(t, 0, snap.Consumed)

	_, err = s.SaveLog("priya", "2026-03-10", SaveLogRequest{Water: floatPtr(2.0), IsPeriod: boolPtr(true)})
	require.NoError(t, err)
	_, err = s.AddMeal("priya", "2026-03-10", AddMealRequest{Type: "Breakfast", Description: "dosa"})
	require.NoError(t, err)

	snap, err = s.Snapshot("priya", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 120, snap.Consumed)
	assert.Equal(t, 2.0, snap.Water)
	assert.True(t, snap.IsPeriod)
}

func boolPtr(v bool) *bool { return &v }
