package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// AdminTokenHeader is the custom header the admin panel attaches to every
// request. Media requests cannot set headers, so the token query parameter is
// accepted as a fallback for them.
const AdminTokenHeader = "x-admin-token"

func AdminAuthRequired(adminToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(AdminTokenHeader)
		if token == "" {
			token = c.Query("token")
		}
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid admin token",
			})
		}
		return c.Next()
	}
}
