package feed

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sistersync/sistersync-backend/internal/config"
	"gorm.io/gorm"
)

type FeedPlugin struct {
	feedService *FeedService
	hub         *Hub
}

func New(feedService *FeedService, hub *Hub) *FeedPlugin {
	return &FeedPlugin{feedService: feedService, hub: hub}
}

func (p *FeedPlugin) ID() string { return "feed" }

// Models returns nil: the feed reads tables owned by other plugins.
func (p *FeedPlugin) Models() []interface{} { return nil }

func (p *FeedPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewFeedHandler(p.feedService, p.hub)

	router.Get("/feed", handler.GetFeed)
	router.Get("/feed/ws", handler.UpgradeGate, websocket.New(handler.Subscribe))
}
