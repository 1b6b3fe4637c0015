package backup

import (
	"errors"
	"fmt"
	"time"

	"github.com/sistersync/sistersync-backend/internal/apps/cycle"
	"github.com/sistersync/sistersync-backend/internal/apps/logs"
	"github.com/sistersync/sistersync-backend/internal/apps/streaks"
	"gorm.io/gorm"
)

// ExportDocument is the full portable snapshot of one user's data. Meals
// and activities ride along inside each log, so the document restores
// cleanly without foreign-key bookkeeping.
type ExportDocument struct {
	UserName   string               `json:"user_name"`
	ExportedAt time.Time            `json:"exported_at"`
	Version    int                  `json:"version"`
	Logs       []logs.DailyLog      `json:"logs"`
	Profile    *streaks.UserProfile `json:"profile,omitempty"`
	Cycle      *cycle.CycleSettings `json:"cycle,omitempty"`
}

const exportVersion = 1

type BackupService struct {
	db *gorm.DB
}

func NewBackupService(db *gorm.DB) *BackupService {
	return &BackupService{db: db}
}

// Export collects everything the given user owns into one document.
func (s *BackupService) Export(userName string) (*ExportDocument, error) {
	doc := &ExportDocument{
		UserName:   userName,
		ExportedAt: time.Now().UTC(),
		Version:    exportVersion,
	}

	err := s.db.
		Preload("Meals").
		Preload("Activities").
		Where("user_name = ?", userName).
		Order("date ASC").
		Find(&doc.Logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to export logs: %w", err)
	}

	var profile streaks.UserProfile
	err = s.db.Where("user_name = ?", userName).First(&profile).Error
	if err == nil {
		doc.Profile = &profile
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to export profile: %w", err)
	}

	var settings cycle.CycleSettings
	err = s.db.Where("user_name = ?", userName).First(&settings).Error
	if err == nil {
		doc.Cycle = &settings
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to export cycle settings: %w", err)
	}

	return doc, nil
}

// Filename follows the {user}_wellness_backup_{date}.json convention.
func Filename(userName string, now time.Time) string {
	return fmt.Sprintf("%s_wellness_backup_%s.json", userName, now.Format("2006-01-02"))
}
