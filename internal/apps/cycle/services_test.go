package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) *CycleService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&CycleSettings{}))
	return NewCycleService(db)
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func TestGetSettingsMissingReturnsNil(t *testing.T) {
	s := setupService(t)

	settings, err := s.GetSettings("priya")
	require.NoError(t, err)
	assert.Nil(t, settings)
}

func TestSaveSettingsCreatesWithDefaults(t *testing.T) {
	s := setupService(t)

	settings, err := s.SaveSettings("priya", SaveSettingsRequest{
		LastPeriodStart: strPtr("2026-03-01"),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, settings.PeriodDuration)
	assert.Equal(t, 28, settings.CycleLength)
	require.NotNil(t, settings.LastPeriodStart)
}

func TestSaveSettingsPartialUpdate(t *testing.T) {
	s := setupService(t)

	_, err := s.SaveSettings("priya", SaveSettingsRequest{
		LastPeriodStart: strPtr("2026-03-01"),
		CycleLength:     intPtr(30),
	})
	require.NoError(t, err)

	settings, err := s.SaveSettings("priya", SaveSettingsRequest{TrackingGoal: strPtr("symptoms")})
	require.NoError(t, err)

	assert.Equal(t, 30, settings.CycleLength)
	assert.Equal(t, "2026-03-01", *settings.LastPeriodStart)
	assert.Equal(t, "symptoms", settings.TrackingGoal)
}

func TestSaveSettingsValidation(t *testing.T) {
	s := setupService(t)

	_, err := s.SaveSettings("priya", SaveSettingsRequest{LastPeriodStart: strPtr("01-03-2026")})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = s.SaveSettings("priya", SaveSettingsRequest{CycleLength: intPtr(90)})
	assert.ErrorIs(t, err, ErrInvalidCycleLength)
}

func TestDeriveCycleDay(t *testing.T) {
	s := setupService(t)

	_, err := s.SaveSettings("priya", SaveSettingsRequest{
		LastPeriodStart: strPtr("2026-03-01"),
		CycleLength:     intPtr(28),
	})
	require.NoError(t, err)

	day, ok := s.DeriveCycleDay("priya", "2026-03-01")
	assert.True(t, ok)
	assert.Equal(t, 1, day)

	day, ok = s.DeriveCycleDay("priya", "2026-03-15")
	assert.True(t, ok)
	assert.Equal(t, 15, day)

	// Wraps past one full cycle.
	day, ok = s.DeriveCycleDay("priya", "2026-03-29")
	assert.True(t, ok)
	assert.Equal(t, 1, day)
}

func TestDeriveCycleDayUnavailable(t *testing.T) {
	s := setupService(t)

	_, ok := s.DeriveCycleDay("priya", "2026-03-10")
	assert.False(t, ok)

	_, err := s.SaveSettings("priya", SaveSettingsRequest{LastPeriodStart: strPtr("2026-03-10")})
	require.NoError(t, err)

	// A date before the recorded start cannot be derived.
	_, ok = s.DeriveCycleDay("priya", "2026-03-05")
	assert.False(t, ok)
}
