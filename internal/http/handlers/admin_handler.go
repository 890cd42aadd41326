package handlers

import (
	applog "shoptrack/internal/log"
	"shoptrack/internal/repos"
	"shoptrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Items   *repos.ItemRepo
	Repairs *services.RepairService
}

// confirmed guards the destructive resets: the form must spell out RESET.
func confirmed(c *fiber.Ctx) bool {
	return c.FormValue("confirm") == "RESET"
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return render(c, "admin", fiber.Map{})
}

// POST /admin/inventory/reset — quantities to zero, sales wiped, alerts off.
func (h *AdminHandler) ResetInventory(c *fiber.Ctx) error {
	if !confirmed(c) {
		return c.Status(400).Render("admin", fiber.Map{"Err": "Type RESET to confirm."})
	}
	if err := h.Items.ResetAll(); err != nil {
		applog.Error(c, "admin.inventory.reset.fail", err, nil)
		return c.Status(500).Render("admin", fiber.Map{"Err": "Reset failed."})
	}
	applog.Audit(c, "admin.inventory.reset", nil)
	return render(c, "admin", fiber.Map{"Msg": "All inventory data has been reset."})
}

// POST /admin/repairs/reset — every ticket back to IN_PROGRESS, revenue dropped.
func (h *AdminHandler) ResetRepairs(c *fiber.Ctx) error {
	if !confirmed(c) {
		return c.Status(400).Render("admin", fiber.Map{"Err": "Type RESET to confirm."})
	}
	if err := h.Repairs.ResetAll(); err != nil {
		applog.Error(c, "admin.repairs.reset.fail", err, nil)
		return c.Status(500).Render("admin", fiber.Map{"Err": "Reset failed."})
	}
	applog.Audit(c, "admin.repairs.reset", nil)
	return render(c, "admin", fiber.Map{"Msg": "All repairs have been reset to In Progress."})
}
