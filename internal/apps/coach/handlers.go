package coach

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sistersync/sistersync-backend/internal/dto"
	"github.com/sistersync/sistersync-backend/internal/identity"
)

// SnapshotProvider supplies the day's log snapshot; implemented by the log
// store so this package stays free of persistence concerns.
type SnapshotProvider interface {
	Snapshot(userName, date string) (Snapshot, error)
}

type CoachHandler struct {
	snapshots SnapshotProvider
}

func NewCoachHandler(snapshots SnapshotProvider) *CoachHandler {
	return &CoachHandler{snapshots: snapshots}
}

type estimateRequest struct {
	Description string `json:"description"`
}

// Estimate handles POST /coach/estimate - previews calories for a meal description.
func (h *CoachHandler) Estimate(c *fiber.Ctx) error {
	var req estimateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	return c.JSON(EstimateCalories(req.Description))
}

// Feedback handles GET /coach/feedback?date= - returns the coach message for a day.
func (h *CoachHandler) Feedback(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	now := time.Now()
	date := c.Query("date", now.Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid date, expected YYYY-MM-DD",
		})
	}

	// A missing or failed snapshot degrades to an empty day, never an error.
	snap, err := h.snapshots.Snapshot(userName, date)
	if err != nil {
		snap = Snapshot{}
	}

	return c.JSON(fiber.Map{
		"date":    date,
		"message": Feedback(snap, userName, now.Hour()),
	})
}
