package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/luxe/internal/models"
	"github.com/example/luxe/internal/services"
)

const userContextKey = "currentUser"

// Resolver maps a bearer token to its user.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
	RequireRole(user *models.User, role models.Role) (*models.User, error)
}

// Authenticate validates the bearer token and stores the resolved user in
// the request locals.
func Authenticate(access Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		user, err := access.Resolve(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid authentication credentials")
			}
			return err
		}

		c.Locals(userContextKey, user)
		return c.Next()
	}
}

// RequireAdmin rejects users without the admin role. It must run after
// Authenticate.
func RequireAdmin(access Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, _ := GetCurrentUser(c)
		if _, err := access.RequireRole(user, models.RoleAdmin); err != nil {
			if errors.Is(err, services.ErrForbidden) {
				return fiber.NewError(fiber.StatusForbidden, "admin access required")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authentication credentials")
		}
		return c.Next()
	}
}

// GetCurrentUser returns the user stored by Authenticate.
func GetCurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userContextKey).(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
