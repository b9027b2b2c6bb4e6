package middleware

import (
	"github.com/gofiber/fiber/v2"

	"recruitment-hub/internal/pkg/ratelimit"
)

// RateLimit throttles requests per client IP.
func RateLimit(limiter ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow(c.UserContext(), c.IP()) {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests, please try again later")
		}
		return c.Next()
	}
}
