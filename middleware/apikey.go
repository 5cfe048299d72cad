package middleware

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// RequireAdminKey guards destructive configuration endpoints (reset, import)
// with a pre-shared key checked against the bcrypt hash in ADMIN_KEY_HASH.
func RequireAdminKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		hash := os.Getenv("ADMIN_KEY_HASH")
		if hash == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Admin key not configured",
			})
		}

		key := c.Get("X-Admin-Key")
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid admin key",
			})
		}
		return c.Next()
	}
}
