package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler lets the login screen verify a token before persisting it.
// Every other route just checks the same token via middleware.
type AuthHandler struct {
	adminToken string
}

func NewAuthHandler(adminToken string) *AuthHandler {
	return &AuthHandler{adminToken: adminToken}
}

type loginRequest struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Token == "" || subtle.ConstantTimeCompare([]byte(req.Token), []byte(h.adminToken)) != 1 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Invalid admin token"})
	}
	return c.JSON(fiber.Map{"message": "ok"})
}
