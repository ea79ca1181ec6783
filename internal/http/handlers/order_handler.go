package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "luxejewel/internal/log"
	"luxejewel/internal/services"
	"luxejewel/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type createOrderInput struct {
	ShippingAddress map[string]string `json:"shipping_address"`
}

type verifyPaymentInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	OrderID           string `json:"order_id"`
}

// POST /api/orders/create
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in createOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	u := currentUser(c)
	checkout, err := h.Orders.Create(c.Context(), u.ID, in.ShippingAddress)
	if err != nil {
		applog.Security(c, "order.create.fail", map[string]any{"error": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "order.create", map[string]any{
		"order_id":          checkout.OrderID,
		"razorpay_order_id": checkout.RazorpayOrderID,
		"amount":            checkout.Amount,
	})
	return c.JSON(checkout)
}

// POST /api/orders/verify-payment
func (h *OrderHandler) VerifyPayment(c *fiber.Ctx) error {
	var in verifyPaymentInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	u := currentUser(c)
	err := h.Orders.VerifyPayment(c.Context(), u.ID, in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature, in.OrderID)
	if err != nil {
		applog.Security(c, "payment.verify.fail", map[string]any{"order_id": in.OrderID})
		return fail(c, err)
	}
	applog.Audit(c, "payment.verify", map[string]any{"order_id": in.OrderID})
	return c.JSON(fiber.Map{"message": "payment verified successfully", "order_id": in.OrderID})
}

// GET /api/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.List(c.Context(), currentUser(c))
	if err != nil {
		applog.Error(c, "orders.list.fail", err, nil)
		return fail(c, err)
	}
	return c.JSON(orders)
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	order, err := h.Orders.Get(c.Context(), id, currentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

// PUT /api/orders/:id/status (admin)
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	status := c.Query("status")
	if status == "" {
		return badRequest(c, "missing status")
	}
	if err := h.Orders.SetStatus(c.Context(), id, status); err != nil {
		applog.Error(c, "orders.status.fail", err, map[string]any{"order_id": id})
		return fail(c, err)
	}
	applog.Audit(c, "orders.status", map[string]any{"order_id": id, "status": status})
	return c.JSON(fiber.Map{"message": "order status updated"})
}
