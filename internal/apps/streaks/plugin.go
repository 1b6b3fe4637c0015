package streaks

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sistersync/sistersync-backend/internal/config"
	"gorm.io/gorm"
)

type StreaksPlugin struct {
	streakService *StreakService
}

func New(streakService *StreakService) *StreaksPlugin {
	return &StreaksPlugin{streakService: streakService}
}

func (p *StreaksPlugin) ID() string { return "streaks" }

func (p *StreaksPlugin) Models() []interface{} {
	return []interface{}{
		&UserProfile{},
	}
}

func (p *StreaksPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewStreakHandler(p.streakService)

	router.Get("/profile", handler.GetProfile)
	router.Get("/profile/insights", handler.GetInsights)
}
