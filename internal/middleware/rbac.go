package middleware

import (
	"github.com/gofiber/fiber/v2"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
)

// RequireRole rejects callers whose role is not listed. Services re-check
// through the same gate, so this only short-circuits the request early.
func RequireRole(gate access.Gate, roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := gate.RequireRole(GetCurrentAccount(c), roles...); err != nil {
			return err
		}
		return c.Next()
	}
}
