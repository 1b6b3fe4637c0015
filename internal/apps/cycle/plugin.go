package cycle

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sistersync/sistersync-backend/internal/config"
	"gorm.io/gorm"
)

type CyclePlugin struct {
	cycleService *CycleService
}

func New(cycleService *CycleService) *CyclePlugin {
	return &CyclePlugin{cycleService: cycleService}
}

func (p *CyclePlugin) ID() string { return "cycle" }

func (p *CyclePlugin) Models() []interface{} {
	return []interface{}{
		&CycleSettings{},
	}
}

func (p *CyclePlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewCycleHandler(p.cycleService)

	router.Get("/cycle/settings", handler.GetSettings)
	router.Put("/cycle/settings", handler.SaveSettings)
}
