package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"luxejewel/internal/domain"
)

// fail translates a typed error kind into its transport status in one
// place. Unrecognized errors become a generic 500; nothing is retried.
func fail(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrBadRequest):
		status = fiber.StatusBadRequest
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": message(err)})
}

// message strips the sentinel prefix so clients see "cart is empty", not
// "bad request: cart is empty".
func message(err error) string {
	msg := err.Error()
	for _, kind := range []error{domain.ErrUnauthorized, domain.ErrForbidden, domain.ErrNotFound, domain.ErrConflict, domain.ErrBadRequest} {
		msg = strings.TrimPrefix(msg, kind.Error()+": ")
	}
	return msg
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
