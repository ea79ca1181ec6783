package handlers

import (
	"github.com/gofiber/fiber/v2"

	"luxejewel/internal/domain"
	applog "luxejewel/internal/log"
	"luxejewel/internal/services"
	"luxejewel/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/products?category=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List(c.Context(), c.Query("category"))
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return fail(c, err)
	}
	return c.JSON(products)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	p, err := h.Catalog.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

// POST /api/products (admin)
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var f domain.ProductFields
	if err := c.BodyParser(&f); err != nil {
		return badRequest(c, "invalid request body")
	}
	p, err := h.Catalog.Create(c.Context(), f)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID})
	return c.JSON(p)
}

// PUT /api/products/:id (admin)
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	var f domain.ProductFields
	if err := c.BodyParser(&f); err != nil {
		return badRequest(c, "invalid request body")
	}
	p, err := h.Catalog.Update(c.Context(), id, f)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

// DELETE /api/products/:id (admin)
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err := h.Catalog.Delete(c.Context(), id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "product deleted successfully"})
}

// GET /api/categories
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.Categories(c.Context())
	if err != nil {
		applog.Error(c, "categories.list.fail", err, nil)
		return fail(c, err)
	}
	return c.JSON(cats)
}
