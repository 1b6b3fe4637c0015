package logs

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sistersync/sistersync-backend/internal/dto"
	"github.com/sistersync/sistersync-backend/internal/identity"
)

type LogHandler struct {
	logService *LogService
}

func NewLogHandler(logService *LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// GetToday handles GET /logs/today.
func (h *LogHandler) GetToday(c *fiber.Ctx) error {
	return h.getByDate(c, time.Now().Format("2006-01-02"))
}

// GetByDate handles GET /logs/:date.
func (h *LogHandler) GetByDate(c *fiber.Ctx) error {
	return h.getByDate(c, c.Params("date"))
}

// SaveToday handles PUT /logs/today.
func (h *LogHandler) SaveToday(c *fiber.Ctx) error {
	return h.saveLog(c, time.Now().Format("2006-01-02"))
}

func (h *LogHandler) getByDate(c *fiber.Ctx, date string) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	log, err := h.logService.GetLog(userName, date)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch log",
		})
	}

	// Missing day: return an empty default so the client always renders.
	if log == nil {
		log = &DailyLog{
			UserName:      userName,
			Date:          date,
			Mood:          "Good",
			SugarCravings: "None",
			CalorieTarget: 1500,
			Meals:         []Meal{},
			Activities:    []Activity{},
		}
	}

	return c.JSON(log)
}

// SaveLog handles PUT /logs/:date - partial upsert of scalar fields.
func (h *LogHandler) SaveLog(c *fiber.Ctx) error {
	return h.saveLog(c, c.Params("date"))
}

func (h *LogHandler) saveLog(c *fiber.Ctx, date string) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req SaveLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	log, err := h.logService.SaveLog(userName, date, req)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidCraving) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save log",
		})
	}

	return c.JSON(log)
}

// GetHistory handles GET /logs/history?days=7.
func (h *LogHandler) GetHistory(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	days := c.QueryInt("days", 7)
	logs, err := h.logService.GetHistory(userName, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch history",
		})
	}

	return c.JSON(HistoryResponse{Logs: logs, Days: days})
}

// AddMeal handles POST /logs/:date/meals.
func (h *LogHandler) AddMeal(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req AddMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	meal, err := h.logService.AddMeal(userName, c.Params("date"), req)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidMealType) || errors.Is(err, ErrEmptyDescription) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add meal",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(meal)
}

// UpdateMeal handles PUT /meals/:id.
func (h *LogHandler) UpdateMeal(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	mealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid meal ID",
		})
	}

	var req UpdateMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	meal, err := h.logService.UpdateMeal(userName, mealID, req)
	if err != nil {
		if errors.Is(err, ErrMealNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Meal not found",
			})
		}
		if errors.Is(err, ErrInvalidMealType) || errors.Is(err, ErrEmptyDescription) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update meal",
		})
	}

	return c.JSON(meal)
}

// DeleteMeal handles DELETE /meals/:id.
func (h *LogHandler) DeleteMeal(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	mealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid meal ID",
		})
	}

	if err := h.logService.DeleteMeal(userName, mealID); err != nil {
		if errors.Is(err, ErrMealNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Meal not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete meal",
		})
	}

	return c.JSON(fiber.Map{"message": "Meal deleted"})
}

// AddActivity handles POST /logs/:date/activities.
func (h *LogHandler) AddActivity(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req AddActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	activity, err := h.logService.AddActivity(userName, c.Params("date"), req)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrEmptyDescription) || errors.Is(err, ErrInvalidDuration) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add activity",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(activity)
}

// UpdateActivity handles PUT /activities/:id.
func (h *LogHandler) UpdateActivity(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid activity ID",
		})
	}

	var req UpdateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	activity, err := h.logService.UpdateActivity(userName, activityID, req)
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Activity not found",
			})
		}
		if errors.Is(err, ErrEmptyDescription) || errors.Is(err, ErrInvalidDuration) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update activity",
		})
	}

	return c.JSON(activity)
}

// DeleteActivity handles DELETE /activities/:id.
func (h *LogHandler) DeleteActivity(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid activity ID",
		})
	}

	if err := h.logService.DeleteActivity(userName, activityID); err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Activity not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete activity",
		})
	}

	return c.JSON(fiber.Map{"message": "Activity deleted"})
}
