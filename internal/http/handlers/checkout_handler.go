package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "unimart/internal/log"
	"unimart/internal/services"
	"unimart/internal/validate"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

// Buy shows the transaction details for one listing with the base quote
// (no coupon applied yet).
func (h *CheckoutHandler) Buy(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}
	cs, err := h.Checkout.Begin(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}
	return render(c, "buy", fiber.Map{"L": cs.Listing, "Quote": cs.CurrentQuote()})
}

// QuoteAPI re-prices a listing with an optional coupon code. A coupon
// miss is not an error: the response carries the zero-discount quote and
// a notice for the client to show.
func (h *CheckoutHandler) QuoteAPI(c *fiber.Ctx) error {
	listingID, ok := validate.ID(c.FormValue("listingId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing listingId"})
	}

	cs, err := h.Checkout.Begin(listingID)
	if err != nil {
		var persistErr *services.PersistenceError
		if errors.As(err, &persistErr) {
			applog.Error(c, "quote.coupons.load", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": persistErr.Hint()})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
	}

	rawCode := c.FormValue("code")
	if rawCode == "" {
		return c.JSON(fiber.Map{"quote": cs.CurrentQuote(), "state": cs.State()})
	}

	code, ok := validate.CouponCode(rawCode)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "code"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid coupon code"})
	}

	q, err := cs.ApplyCoupon(code)
	if errors.Is(err, services.ErrCouponNotFound) {
		return c.JSON(fiber.Map{"quote": q, "state": cs.State(), "notice": "Coupon not found"})
	}
	if err != nil {
		applog.Error(c, "quote.apply", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not apply coupon"})
	}
	applog.Info(c, "coupon.applied", map[string]any{"listing": listingID, "discount": q.Discount})
	return c.JSON(fiber.Map{"quote": q, "state": cs.State()})
}

// Confirm finalizes a purchase, re-deriving the quote server-side from
// the submitted coupon code so the client cannot price its own order.
func (h *CheckoutHandler) Confirm(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}

	cs, err := h.Checkout.Begin(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}
	if code, ok := validate.CouponCode(c.FormValue("code")); ok {
		// A rejected coupon still confirms, at zero discount.
		_, _ = cs.ApplyCoupon(code)
	}

	p, err := h.Checkout.Confirm(cs, sid)
	if err != nil {
		var persistErr *services.PersistenceError
		if errors.As(err, &persistErr) {
			applog.Error(c, "checkout.confirm.persist", err, nil)
			return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": persistErr.Hint()})
		}
		applog.Security(c, "checkout.confirm.fail", map[string]any{"listing": id, "error": err.Error()})
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "This item just sold out."})
	}

	applog.Audit(c, "checkout.confirm", map[string]any{
		"purchase_id": p.ID,
		"listing_id":  p.ListingID,
		"total":       p.Total,
	})
	return c.Redirect("/receipt/" + p.ID)
}

func (h *CheckoutHandler) Receipt(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Receipt not found"})
	}
	p, err := h.Checkout.Purchases.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Receipt not found"})
	}
	// Receipts are private to the purchasing session.
	if sid := c.Cookies("sid"); sid == "" || sid != p.BuyerSession {
		applog.Security(c, "access.denied.receipt", map[string]any{"purchase_id": id})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Receipt not found"})
	}
	return render(c, "receipt", fiber.Map{"P": p})
}
