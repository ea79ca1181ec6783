package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "luxejewel/internal/log"
	"luxejewel/internal/services"
)

// Register mounts every /api route on app.
func Register(app *fiber.App, auth *services.AuthService, d *Deps) {
	api := app.Group("/api")

	// Auth (register/login throttled)
	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.auth.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many requests"})
		},
	})
	api.Post("/auth/register", authLimiter, d.AuthHandler.Register)
	api.Post("/auth/login", authLimiter, d.AuthHandler.Login)
	api.Get("/auth/me", RequireAuth(auth), d.AuthHandler.Me)

	// Catalog (reads public, writes admin-gated)
	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Get)
	api.Post("/products", RequireAdmin(auth), d.ProductHandler.Create)
	api.Put("/products/:id", RequireAdmin(auth), d.ProductHandler.Update)
	api.Delete("/products/:id", RequireAdmin(auth), d.ProductHandler.Delete)
	api.Get("/categories", d.ProductHandler.Categories)

	// Cart
	cart := api.Group("/cart", RequireAuth(auth))
	cart.Get("/", d.CartHandler.View)
	cart.Post("/add", d.CartHandler.Add)
	cart.Put("/update", d.CartHandler.Update)
	cart.Delete("/clear", d.CartHandler.Clear)

	// Orders & payment
	orders := api.Group("/orders", RequireAuth(auth))
	orders.Post("/create", d.OrderHandler.Create)
	orders.Post("/verify-payment", d.OrderHandler.VerifyPayment)
	orders.Get("/", d.OrderHandler.List)
	orders.Get("/:id", d.OrderHandler.Get)
	api.Put("/orders/:id/status", RequireAdmin(auth), d.OrderHandler.UpdateStatus)

	// Admin
	api.Get("/admin/analytics", RequireAdmin(auth), d.AdminHandler.Analytics)
}
