package cycle

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sistersync/sistersync-backend/internal/dto"
	"github.com/sistersync/sistersync-backend/internal/identity"
)

type CycleHandler struct {
	cycleService *CycleService
}

func NewCycleHandler(cycleService *CycleService) *CycleHandler {
	return &CycleHandler{cycleService: cycleService}
}

// GetSettings handles GET /cycle/settings.
func (h *CycleHandler) GetSettings(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	settings, err := h.cycleService.GetSettings(userName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch cycle settings",
		})
	}
	if settings == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "No cycle settings saved yet",
		})
	}

	return c.JSON(settings)
}

// SaveSettings handles PUT /cycle/settings.
func (h *CycleHandler) SaveSettings(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req SaveSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	settings, err := h.cycleService.SaveSettings(userName, req)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidCycleLength) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save cycle settings",
		})
	}

	return c.JSON(settings)
}
