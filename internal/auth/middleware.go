package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/goaltrack/goaltrack-backend/internal/domain"
)

const (
	userIDKey = "user_id"
	userKey   = "user"
)

// UserResolver looks up the user referenced by a verified token.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Middleware returns the guard that protects authenticated routes. It extracts
// the bearer token from the Authorization header, verifies it and resolves the
// user record before the handler runs. A token whose user no longer exists is
// as unauthorized as a bad signature.
func Middleware(tokens *TokenService, users UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		user, err := users.FindByID(c.UserContext(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(userIDKey, user.ID)
		c.Locals(userKey, user)

		return c.Next()
	}
}

// UserID returns the authenticated caller's id, or "" outside the guard.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

// CurrentUser returns the user record attached by the guard, or nil.
func CurrentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals(userKey).(*domain.User)
	return u
}
