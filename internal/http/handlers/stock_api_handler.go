package handlers

import (
	"strings"

	applog "shoptrack/internal/log"
	"shoptrack/internal/services"
	"shoptrack/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type StockAPIHandler struct {
	Inv *services.InventoryService
}

// wantsJSON replaces the old "is this an AJAX request" sniffing with explicit
// content negotiation: either the XHR marker header or a JSON Accept header.
func wantsJSON(c *fiber.Ctx) bool {
	if strings.EqualFold(c.Get("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}

// GET /api/check-stock?item_id=
func (h *StockAPIHandler) Check(c *fiber.Ctx) error {
	if !wantsJSON(c) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	itemID, ok := validate.ID(c.Query("item_id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing item_id"})
	}

	status, err := h.Inv.CheckStock(itemID)
	if err != nil {
		applog.Info(c, "api.check_stock.miss", map[string]any{"item_id": itemID})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
	}
	return c.JSON(status)
}
