package cycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dayLayout = "2006-01-02"

var (
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidCycleLength = errors.New("cycle length must be between 15 and 60 days")
)

type CycleService struct {
	db *gorm.DB
}

func NewCycleService(db *gorm.DB) *CycleService {
	return &CycleService{db: db}
}

// GetSettings returns the user's cycle settings, or nil when none saved.
func (s *CycleService) GetSettings(userName string) (*CycleSettings, error) {
	var settings CycleSettings
	err := s.db.Where("user_name = ?", userName).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cycle settings: %w", err)
	}
	return &settings, nil
}

// SaveSettings upserts the user's cycle settings, applying present fields.
func (s *CycleService) SaveSettings(userName string, req SaveSettingsRequest) (*CycleSettings, error) {
	if req.LastPeriodStart != nil {
		if _, err := time.Parse(dayLayout, *req.LastPeriodStart); err != nil {
			return nil, ErrInvalidDate
		}
	}
	if req.CycleLength != nil && (*req.CycleLength < 15 || *req.CycleLength > 60) {
		return nil, ErrInvalidCycleLength
	}

	var settings CycleSettings
	err := s.db.Where("user_name = ?", userName).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = CycleSettings{
			ID:             uuid.New(),
			UserName:       userName,
			PeriodDuration: 5,
			CycleLength:    28,
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch cycle settings: %w", err)
	}

	if req.LastPeriodStart != nil {
		settings.LastPeriodStart = req.LastPeriodStart
	}
	if req.PeriodDuration != nil && *req.PeriodDuration > 0 {
		settings.PeriodDuration = *req.PeriodDuration
	}
	if req.CycleLength != nil {
		settings.CycleLength = *req.CycleLength
	}
	if req.IsRegular != nil {
		settings.IsRegular = *req.IsRegular
	}
	if req.TrackingGoal != nil {
		settings.TrackingGoal = *req.TrackingGoal
	}

	if err := s.db.Save(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to save cycle settings: %w", err)
	}

	return &settings, nil
}

// DeriveCycleDay back-derives the 1-based cycle day for a date from the last
// recorded period start, wrapping at the cycle length. Returns false when
// settings are missing or the date precedes the recorded start.
func (s *CycleService) DeriveCycleDay(userName, date string) (int, bool) {
	settings, err := s.GetSettings(userName)
	if err != nil || settings == nil || settings.LastPeriodStart == nil || settings.CycleLength <= 0 {
		return 0, false
	}

	start, err := time.Parse(dayLayout, *settings.LastPeriodStart)
	if err != nil {
		return 0, false
	}
	day, err := time.Parse(dayLayout, date)
	if err != nil {
		return 0, false
	}

	diff := int(day.Sub(start).Hours() / 24)
	if diff < 0 {
		return 0, false
	}

	return diff%settings.CycleLength + 1, true
}
