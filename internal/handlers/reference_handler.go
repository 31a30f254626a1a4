package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
)

// ReferenceHandler serves the read-only muscle and contraindication lookups.
type ReferenceHandler struct {
	referenceRepo referenceStore
}

type referenceStore interface {
	ListMuscles(ctx context.Context) ([]models.Muscle, error)
	ListContraindications(ctx context.Context) ([]models.Contraindication, error)
}

func NewReferenceHandler(referenceRepo referenceStore) *ReferenceHandler {
	return &ReferenceHandler{referenceRepo: referenceRepo}
}

func (h *ReferenceHandler) ListMuscles(c *fiber.Ctx) error {
	muscles, err := h.referenceRepo.ListMuscles(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch muscles"})
	}
	return c.JSON(muscles)
}

func (h *ReferenceHandler) ListContraindications(c *fiber.Ctx) error {
	contraindications, err := h.referenceRepo.ListContraindications(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch contraindications"})
	}
	return c.JSON(contraindications)
}
