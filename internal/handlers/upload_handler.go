package handlers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ReFOiL/fitboddy-admin/internal/services"
)

const maxVideoSizeBytes = 200 * 1024 * 1024

type UploadHandler struct {
	storageService services.StorageService
}

func NewUploadHandler(storageService services.StorageService) *UploadHandler {
	return &UploadHandler{storageService: storageService}
}

// UploadVideo stores an exercise video and returns the object key the admin
// panel saves into exercise.video_url.
func (h *UploadHandler) UploadVideo(c *fiber.Ctx) error {
	if h.storageService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage service is not configured"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	if fileHeader.Size <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is empty"})
	}
	if fileHeader.Size > maxVideoSizeBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file exceeds 200MB limit"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".mp4", ".mov", ".webm", ".m4v":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file must be an mp4, mov, webm, or m4v video"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open uploaded file"})
	}
	defer file.Close()

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	objectKey, err := h.storageService.UploadVideo(c.Context(), file, filename)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload video"})
	}

	return c.JSON(fiber.Map{"object_key": objectKey})
}
