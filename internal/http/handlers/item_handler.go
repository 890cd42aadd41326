package handlers

import (
	"strings"

	"shoptrack/internal/domain"
	applog "shoptrack/internal/log"
	"shoptrack/internal/repos"
	"shoptrack/internal/services"
	"shoptrack/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ItemHandler struct {
	Inv   *services.InventoryService
	Cats  *repos.CategoryRepo
	Items *repos.ItemRepo
}

// GET /items?search_query=&category=
func (h *ItemHandler) List(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("search_query"))
	if query != "" {
		q, ok := validate.Q(query)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "search_query"})
			return c.Status(400).Render("items", fiber.Map{"Err": "Enter a valid keyword (letters/numbers only)"})
		}
		query = strings.ToLower(q)
	}
	categoryID := strings.TrimSpace(c.Query("category"))
	if categoryID != "" {
		if _, ok := validate.ID(categoryID); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category"})
			return c.Status(400).Render("items", fiber.Map{"Err": "Invalid category"})
		}
	}

	items, err := h.Items.Search(query, categoryID)
	if err != nil {
		applog.Error(c, "items.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load items"})
	}
	cats, _ := h.Cats.List()
	low, _ := h.Items.LowStock()
	return render(c, "items", fiber.Map{
		"Items": items, "Categories": cats, "LowStockItems": low,
		"Q": query, "CategoryID": categoryID, "Count": len(items),
	})
}

// GET /items/add and /items/:id/edit
func (h *ItemHandler) Form(c *fiber.Ctx) error {
	cats, err := h.Cats.List()
	if err != nil {
		applog.Error(c, "items.form.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load categories"})
	}
	data := fiber.Map{"Categories": cats}
	if id := c.Params("id"); id != "" {
		it, err := h.Items.Get(id)
		if err != nil {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
		}
		data["Item"] = it
	}
	return render(c, "item_form", data)
}

// parseItemForm pulls and validates every item field from the POST body.
func (h *ItemHandler) parseItemForm(c *fiber.Ctx) (domain.Item, string) {
	var it domain.Item
	name, okName := validate.Name(c.FormValue("name"))
	catID, okCat := validate.ID(c.FormValue("category"))
	buy, okBuy := validate.Price(c.FormValue("buying_price"))
	sell, okSell := validate.Price(c.FormValue("selling_price"))
	qty, okQty := validate.Qty(c.FormValue("quantity"))
	thr, okThr := validate.Qty(c.FormValue("low_stock_threshold"))
	if c.FormValue("low_stock_threshold") == "" {
		thr, okThr = 5, true
	}
	if !okName || !okCat || !okBuy || !okSell || !okQty || !okThr {
		return it, "Check the form: name, category, non-negative prices and quantities are required."
	}
	if sell.LessThan(buy) {
		return it, "Selling price should be higher than buying price."
	}
	it = domain.Item{
		Name: name, CategoryID: catID,
		BuyingPrice: buy, SellingPrice: sell,
		Quantity: qty, LowStockThreshold: thr,
	}
	return it, ""
}

// POST /items/add
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	it, msg := h.parseItemForm(c)
	if msg != "" {
		cats, _ := h.Cats.List()
		return c.Status(400).Render("item_form", fiber.Map{"Err": msg, "Categories": cats})
	}
	if err := h.Inv.SaveItem(&it); err != nil {
		applog.Error(c, "items.create.fail", err, map[string]any{"name": it.Name})
		cats, _ := h.Cats.List()
		return c.Status(400).Render("item_form", fiber.Map{"Err": "Could not save the item.", "Categories": cats})
	}
	applog.Audit(c, "items.create", map[string]any{"item_id": it.ID})
	return c.Redirect("/items")
}

// POST /items/:id/edit
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}
	if _, err := h.Items.Get(id); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}
	it, msg := h.parseItemForm(c)
	if msg != "" {
		cats, _ := h.Cats.List()
		return c.Status(400).Render("item_form", fiber.Map{"Err": msg, "Categories": cats})
	}
	it.ID = id
	if err := h.Inv.SaveItem(&it); err != nil {
		applog.Error(c, "items.update.fail", err, map[string]any{"item_id": id})
		cats, _ := h.Cats.List()
		return c.Status(400).Render("item_form", fiber.Map{"Err": "Could not save the item.", "Categories": cats})
	}
	applog.Audit(c, "items.update", map[string]any{"item_id": id})
	return c.Redirect("/items")
}

// POST /items/:id/delete
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}
	if err := h.Items.Delete(id); err != nil {
		applog.Error(c, "items.delete.fail", err, map[string]any{"item_id": id})
		return c.Status(400).SendString("could not delete item")
	}
	applog.Audit(c, "items.delete", map[string]any{"item_id": id})
	return c.Redirect("/items")
}

// GET /items/:id/sell
func (h *ItemHandler) SellForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}
	it, err := h.Items.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}
	return render(c, "sell_item", fiber.Map{"Item": it})
}

// POST /items/:id/sell
func (h *ItemHandler) Sell(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}
	it, err := h.Items.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}

	qty, okQty := validate.PositiveQty(c.FormValue("quantity_sold"))
	if !okQty {
		return c.Status(400).Render("sell_item", fiber.Map{"Item": it, "Err": "Quantity sold must be greater than zero."})
	}
	if qty > it.Quantity {
		return c.Status(400).Render("sell_item", fiber.Map{"Item": it, "Err": "Cannot sell more than available quantity."})
	}
	var override *decimal.Decimal
	if raw := strings.TrimSpace(c.FormValue("selling_price")); raw != "" {
		p, okP := validate.Price(raw)
		if !okP {
			return c.Status(400).Render("sell_item", fiber.Map{"Item": it, "Err": "Enter a valid selling price."})
		}
		override = &p
	}

	sale, err := h.Inv.SellItem(id, qty, override)
	if err != nil {
		if err == services.ErrInsufficientStock {
			applog.Info(c, "items.sell.insufficient", map[string]any{"item_id": id, "qty": qty})
			return c.Status(400).Render("sell_item", fiber.Map{"Item": it, "Err": "Sale failed. Not enough stock."})
		}
		applog.Error(c, "items.sell.fail", err, map[string]any{"item_id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not record the sale"})
	}

	applog.Audit(c, "items.sell", map[string]any{
		"item_id": id, "sale_id": sale.ID, "qty": qty, "profit": sale.Profit().StringFixed(2),
	})
	return c.Redirect("/items")
}
