package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"unimart/internal/domain"
	applog "unimart/internal/log"
	"unimart/internal/media"
	"unimart/internal/services"
	"unimart/internal/validate"
)

type ListingHandler struct {
	Catalog *services.CatalogService
	Pub     *services.ListingService
}

func (h *ListingHandler) Home(c *fiber.Ctx) error {
	listings, err := h.Catalog.Grid(1, 24)
	if err != nil {
		applog.Error(c, "grid.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load listings. Please retry."})
	}
	return render(c, "home", fiber.Map{"Listings": listings, "Categories": domain.Categories})
}

func (h *ListingHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "listing"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	l, err := h.Catalog.Get(id)
	if err != nil || l.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "listing", fiber.Map{"L": l})
}

// PostForm shows the publish form, pre-filled from the classifier when a
// detected label rides along on the query string.
func (h *ListingHandler) PostForm(c *fiber.Ctx) error {
	label := c.Query("label")
	sug, err := h.Pub.Suggest(c.Context(), label)
	if err != nil {
		applog.Error(c, "classify.fail", err, map[string]any{"label": label})
		// The form still works without a suggestion.
	}
	return render(c, "post", fiber.Map{
		"Sug":        sug,
		"Label":      label,
		"Categories": domain.Categories,
		"Sizes":      domain.Sizes,
		"Genres":     domain.Genres,
	})
}

// Publish runs the full posting pipeline from a multipart form.
func (h *ListingHandler) Publish(c *fiber.Ctx) error {
	sid := ensureSID(c)

	form := services.ListingForm{
		DraftID:     c.FormValue("draftId"),
		Title:       c.FormValue("title"),
		PriceRaw:    c.FormValue("price"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Size:        c.FormValue("size"),
		Genre:       c.FormValue("genre"),
		QuantityRaw: c.FormValue("quantity"),
	}
	if form.DraftID != "" {
		if _, ok := validate.ID(form.DraftID); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "draftId"})
			return c.Status(fiber.StatusBadRequest).SendString("invalid draft id")
		}
	}

	var photo *multipart.FileHeader
	if fh, err := c.FormFile("photo"); err == nil {
		photo = fh
	}

	var (
		l   domain.Listing
		err error
	)
	if photo != nil {
		f, openErr := photo.Open()
		if openErr != nil {
			applog.Error(c, "post.photo.open", openErr, nil)
			return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Could not read the photo. Please retake it."})
		}
		defer f.Close()
		l, err = h.Pub.Publish(c.Context(), sid, form, f, c.FormValue("label"))
	} else {
		l, err = h.Pub.Publish(c.Context(), sid, form, nil, c.FormValue("label"))
	}

	if err != nil {
		return h.publishError(c, err)
	}

	applog.Audit(c, "listing.publish", map[string]any{"listing_id": l.ID, "seller": l.SellerID})
	return c.Redirect("/listing/" + l.ID)
}

func (h *ListingHandler) publishError(c *fiber.Ctx, err error) error {
	var uploadErr *media.UploadError
	var persistErr *services.PersistenceError
	switch {
	case errors.Is(err, services.ErrAuthRequired):
		applog.Security(c, "post.auth.required", nil)
		return c.Redirect("/login")
	case errors.Is(err, media.ErrNotConfigured):
		applog.Error(c, "post.upload.config", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).Render("notfound", fiber.Map{"Message": "Photo uploads are not configured on this server."})
	case errors.As(err, &uploadErr):
		applog.Error(c, "post.upload.fail", err, map[string]any{"status": uploadErr.Status})
		return c.Status(fiber.StatusBadGateway).Render("notfound", fiber.Map{"Message": "The photo could not be uploaded. Please try again."})
	case errors.As(err, &persistErr):
		applog.Error(c, "post.persist.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": persistErr.Hint()})
	default:
		applog.Error(c, "post.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not publish your listing. Please try again."})
	}
}
