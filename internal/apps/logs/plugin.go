package logs

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sistersync/sistersync-backend/internal/config"
	"gorm.io/gorm"
)

type LogsPlugin struct {
	logService *LogService
}

func New(logService *LogService) *LogsPlugin {
	return &LogsPlugin{logService: logService}
}

func (p *LogsPlugin) ID() string { return "logs" }

func (p *LogsPlugin) Models() []interface{} {
	return []interface{}{
		&DailyLog{},
		&Meal{},
		&Activity{},
	}
}

func (p *LogsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewLogHandler(p.logService)

	// Fixed paths before the :date wildcard.
	router.Get("/logs/today", handler.GetToday)
	router.Put("/logs/today", handler.SaveToday)
	router.Get("/logs/history", handler.GetHistory)
	router.Get("/logs/:date", handler.GetByDate)
	router.Put("/logs/:date", handler.SaveLog)
	router.Post("/logs/:date/meals", handler.AddMeal)
	router.Post("/logs/:date/activities", handler.AddActivity)
	router.Put("/meals/:id", handler.UpdateMeal)
	router.Delete("/meals/:id", handler.DeleteMeal)
	router.Put("/activities/:id", handler.UpdateActivity)
	router.Delete("/activities/:id", handler.DeleteActivity)
}
