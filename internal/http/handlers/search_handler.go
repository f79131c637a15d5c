package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"unimart/internal/log"
	"unimart/internal/services"
	"unimart/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: show empty search without errors
		return render(c, "search", fiber.Map{"Q": "", "Category": "", "Size": "", "Listings": []any{}, "Count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Q": "", "Category": "", "Size": "", "Listings": []any{}, "Count": 0, "Err": "Enter a valid keyword (letters/numbers only)",
		})
	}
	q = strings.ToLower(q)

	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		if category, ok = validate.Category(category); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "category"})
			return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
				"Q": q, "Category": "", "Size": "", "Listings": []any{}, "Count": 0, "Err": "Invalid category",
			})
		}
	}
	size := strings.TrimSpace(c.Query("size"))
	if size != "" {
		if size, ok = validate.Size(size); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "size"})
			return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
				"Q": q, "Category": category, "Size": "", "Listings": []any{}, "Count": 0, "Err": "Invalid size filter",
			})
		}
	}

	listings, err := h.Catalog.Search(q, category, size, 1, 20)
	if err != nil {
		log.Error(c, "search.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}

	return render(c, "search", fiber.Map{
		"Q": q, "Category": category, "Size": size,
		"Listings": listings, "Count": len(listings),
	})
}
