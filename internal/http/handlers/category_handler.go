package handlers

import (
	applog "shoptrack/internal/log"
	"shoptrack/internal/repos"
	"shoptrack/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Cats *repos.CategoryRepo
}

// GET /categories/add
func (h *CategoryHandler) Form(c *fiber.Ctx) error {
	return render(c, "category_form", fiber.Map{})
}

// POST /categories/add
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).Render("category_form", fiber.Map{"Err": "Enter a category name."})
	}
	id, err := h.Cats.Create(name)
	if err != nil {
		// unique index on LOWER(name): duplicates land here
		applog.Error(c, "categories.create.fail", err, map[string]any{"name": name})
		return c.Status(400).Render("category_form", fiber.Map{"Err": "Could not create category. Does it already exist?"})
	}
	applog.Audit(c, "categories.create", map[string]any{"category_id": id})
	return c.Redirect("/items")
}
