package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"luxejewel/internal/domain"
	applog "luxejewel/internal/log"
	"luxejewel/internal/services"
)

func resolveBearer(c *fiber.Ctx, auth *services.AuthService) (*domain.User, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return nil, errors.New("authorization header is required")
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return nil, errors.New("invalid token format, must be 'Bearer <token>'")
	}
	return auth.Resolve(c.Context(), token)
}

// RequireAuth resolves the Authorization bearer token to a user record and
// attaches it to the request context.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := resolveBearer(c, auth)
		if err != nil {
			applog.Security(c, "auth.token.reject", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message(err)})
		}
		c.Locals("user", u)
		c.Locals("user_id", u.ID)
		return c.Next()
	}
}

// RequireAdmin gates admin-only routes. Authorization is binary: the
// is_admin flag, nothing finer.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := resolveBearer(c, auth)
		if err != nil {
			applog.Security(c, "auth.token.reject", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message(err)})
		}
		if !u.IsAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not authorized"})
		}
		c.Locals("user", u)
		c.Locals("user_id", u.ID)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
