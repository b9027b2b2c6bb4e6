package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/service/auth"
)

const AccountContextKey = "account"

// AuthRequired resolves the bearer token into the current account.
func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return Unauthorized("Invalid authorization header format")
		}

		return authenticate(c, authService, strings.TrimSpace(parts[1]))
	}
}

// StreamAuth accepts the token from the Authorization header or, for
// EventSource clients that cannot set headers, from the token query parameter.
func StreamAuth(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			if header := c.Get(fiber.HeaderAuthorization); len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
				token = strings.TrimSpace(header[7:])
			}
		}
		if token == "" {
			return Unauthorized("You must be logged in")
		}
		return authenticate(c, authService, token)
	}
}

func authenticate(c *fiber.Ctx, authService auth.Service, token string) error {
	account, err := authService.Authenticate(c.UserContext(), token)
	if err != nil {
		return err
	}
	c.Locals(AccountContextKey, account)
	return c.Next()
}

func GetCurrentAccount(c *fiber.Ctx) *domain.Account {
	account, ok := c.Locals(AccountContextKey).(*domain.Account)
	if !ok {
		return nil
	}
	return account
}
