package coach

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sistersync/sistersync-backend/internal/config"
	"gorm.io/gorm"
)

type CoachPlugin struct {
	snapshots SnapshotProvider
}

func New(snapshots SnapshotProvider) *CoachPlugin {
	return &CoachPlugin{snapshots: snapshots}
}

func (p *CoachPlugin) ID() string { return "coach" }

// Models returns nothing: the coach is stateless.
func (p *CoachPlugin) Models() []interface{} { return nil }

func (p *CoachPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewCoachHandler(p.snapshots)

	router.Post("/coach/estimate", handler.Estimate)
	router.Get("/coach/feedback", handler.Feedback)
}
