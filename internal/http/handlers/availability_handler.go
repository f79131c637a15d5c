package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"unimart/internal/services"
	"unimart/internal/validate"
)

type AvailabilityHandler struct {
	Catalog *services.CatalogService
}

func (h *AvailabilityHandler) Check(c *fiber.Ctx) error {
	listingID := strings.TrimSpace(c.Query("listingId"))
	if listingID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing listingId",
		})
	}
	if _, ok := validate.ID(listingID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid listingId",
		})
	}

	avail, err := h.Catalog.CheckAvailability(listingID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(avail)
}
