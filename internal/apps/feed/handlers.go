package feed

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sistersync/sistersync-backend/internal/dto"
	"github.com/sistersync/sistersync-backend/internal/identity"
)

type FeedHandler struct {
	feedService *FeedService
	hub         *Hub
}

func NewFeedHandler(feedService *FeedService, hub *Hub) *FeedHandler {
	return &FeedHandler{feedService: feedService, hub: hub}
}

// GetFeed handles GET /feed.
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	if _, err := identity.GetUserName(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	items, err := h.feedService.GetFeed()
	if err != nil {
		slog.Error("feed query failed", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch feed",
		})
	}

	return c.JSON(fiber.Map{"items": items})
}

// UpgradeGate rejects plain HTTP on the websocket route and stashes the
// caller's name in Locals, since JWT claims are not reachable once the
// connection is hijacked.
func (h *FeedHandler) UpgradeGate(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	c.Locals("feed_user", userName)
	return c.Next()
}

// Subscribe holds the websocket open until the client disconnects. The
// server never reads meaningful data; the read loop only detects closure.
func (h *FeedHandler) Subscribe(conn *websocket.Conn) {
	userName, _ := conn.Locals("feed_user").(string)

	h.hub.Register(conn, userName)
	defer h.hub.Unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
