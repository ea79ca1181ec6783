package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "luxejewel/internal/log"
	"luxejewel/internal/services"
	"luxejewel/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in registerInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return badRequest(c, "invalid email")
	}
	if !validate.Password(in.Password) {
		return badRequest(c, "password must be 6-72 characters")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return badRequest(c, "invalid name")
	}

	u, token, err := h.Auth.Register(c.Context(), email, in.Password, name)
	if err != nil {
		applog.Security(c, "auth.register.fail", map[string]any{"email": email})
		return fail(c, err)
	}
	applog.Audit(c, "auth.register", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         u,
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	u, token, err := h.Auth.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		return fail(c, err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         u,
	})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}
