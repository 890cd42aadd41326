package handlers

import (
	applog "shoptrack/internal/log"
	"shoptrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Inv *services.InventoryService
}

// GET /
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	d, err := h.Inv.Dashboard()
	if err != nil {
		applog.Error(c, "dashboard.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}
	return render(c, "dashboard", fiber.Map{
		"TotalItems":      d.TotalItems,
		"TotalCategories": d.TotalCategories,
		"TotalWorth":      d.TotalWorth.StringFixed(2),
		"LowStockItems":   d.LowStockItems,
		"RecentSales":     d.RecentSales,
	})
}
