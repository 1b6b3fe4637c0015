package streaks

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sistersync/sistersync-backend/internal/dto"
	"github.com/sistersync/sistersync-backend/internal/identity"
)

type StreakHandler struct {
	streakService *StreakService
}

func NewStreakHandler(streakService *StreakService) *StreakHandler {
	return &StreakHandler{streakService: streakService}
}

// GetProfile handles GET /profile - streak counters and badges.
func (h *StreakHandler) GetProfile(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	profile, err := h.streakService.GetProfile(userName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch profile",
		})
	}

	return c.JSON(profile)
}

// GetInsights handles GET /profile/insights - 7-day aggregates.
func (h *StreakHandler) GetInsights(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	insights, err := h.streakService.WeeklyInsights(userName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute insights",
		})
	}

	return c.JSON(insights)
}
