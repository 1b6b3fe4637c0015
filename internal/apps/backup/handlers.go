package backup

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sistersync/sistersync-backend/internal/dto"
	"github.com/sistersync/sistersync-backend/internal/identity"
)

type BackupHandler struct {
	backupService *BackupService
}

func NewBackupHandler(backupService *BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Export handles GET /backup. The response is the full export document,
// served as a download so browsers save it straight to disk.
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	userName, err := identity.GetUserName(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	doc, err := h.backupService.Export(userName)
	if err != nil {
		slog.Error("backup export failed", "user", userName, "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to export data",
		})
	}

	filename := Filename(userName, time.Now().UTC())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(doc)
}
