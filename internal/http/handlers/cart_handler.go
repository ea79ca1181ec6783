package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "luxejewel/internal/log"
	"luxejewel/internal/services"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// GET /api/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	lines, err := h.Cart.Get(c.Context(), currentUser(c).ID)
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"items": lines})
}

// POST /api/cart/add
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in cartItemInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if in.ProductID == "" {
		return badRequest(c, "missing product_id")
	}
	if err := h.Cart.Add(c.Context(), currentUser(c).ID, in.ProductID, in.Quantity); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "item added to cart"})
}

// PUT /api/cart/update
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var in cartItemInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if in.ProductID == "" {
		return badRequest(c, "missing product_id")
	}
	if err := h.Cart.UpdateLine(c.Context(), currentUser(c).ID, in.ProductID, in.Quantity); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "cart updated"})
}

// DELETE /api/cart/clear
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(c.Context(), currentUser(c).ID); err != nil {
		applog.Error(c, "cart.clear.fail", err, nil)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "cart cleared"})
}
