package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "unimart/internal/log"
	"unimart/internal/services"
	"unimart/internal/validate"
)

type SavedHandler struct {
	Saved *services.SavedService
}

func (h *SavedHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)
	items, err := h.Saved.List(sid)
	if err != nil {
		applog.Error(c, "saved.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load saved items"})
	}
	return render(c, "saved", fiber.Map{"Items": items})
}

func (h *SavedHandler) Save(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.FormValue("listingId"))
	if !ok {
		return c.Status(400).SendString("missing listingId")
	}
	if err := h.Saved.Save(sid, id); err != nil {
		applog.Error(c, "saved.add.fail", err, map[string]any{"listing": id})
		return c.Status(500).SendString("Could not save item")
	}
	applog.Audit(c, "saved.add", map[string]any{"listing": id})
	back := c.Get("Referer")
	if back == "" {
		back = "/saved"
	}
	return c.Redirect(back)
}

func (h *SavedHandler) Unsave(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.FormValue("listingId"))
	if !ok {
		return c.Status(400).SendString("missing listingId")
	}
	if err := h.Saved.Unsave(sid, id); err != nil {
		applog.Error(c, "saved.remove.fail", err, map[string]any{"listing": id})
		return c.Status(500).SendString("Could not remove item")
	}
	applog.Audit(c, "saved.remove", map[string]any{"listing": id})
	return c.Redirect("/saved")
}
