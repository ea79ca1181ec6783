package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "luxejewel/internal/log"
	"luxejewel/internal/services"
)

type AdminHandler struct {
	AnalyticsSvc *services.AnalyticsService
}

// GET /api/admin/analytics
func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	report, err := h.AnalyticsSvc.Snapshot(c.Context())
	if err != nil {
		applog.Error(c, "admin.analytics.fail", err, nil)
		return fail(c, err)
	}
	return c.JSON(report)
}
