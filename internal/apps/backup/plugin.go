package backup

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sistersync/sistersync-backend/internal/config"
	"gorm.io/gorm"
)

type BackupPlugin struct {
	backupService *BackupService
}

func New(backupService *BackupService) *BackupPlugin {
	return &BackupPlugin{backupService: backupService}
}

func (p *BackupPlugin) ID() string { return "backup" }

// Models returns nil: backup only reads tables owned by other plugins.
func (p *BackupPlugin) Models() []interface{} { return nil }

func (p *BackupPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewBackupHandler(p.backupService)

	router.Get("/backup", handler.Export)
}
