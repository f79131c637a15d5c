package services

import (
	"unimart/internal/classify"
	"unimart/internal/domain"
	"unimart/internal/validate"
)

// ListingForm carries the seller's manual edits as raw form fields.
// Empty fields mean "no edit" and fall back to the classifier
// suggestion, then to the type default.
type ListingForm struct {
	DraftID     string // client-generated; makes a retried publish idempotent
	Title       string
	PriceRaw    string
	Description string
	Category    string
	Size        string
	Genre       string
	QuantityRaw string
}

// Normalize assembles a canonical listing from user edits, the uploaded
// image URL and the classifier suggestion. Field precedence is user edit
// > suggestion > type default (0 / empty string / 1). Normalize is pure:
// identical inputs yield identical listings, with id and created_at left
// for the store to assign.
func Normalize(form ListingForm, imageURL string, sug classify.Suggestion) domain.Listing {
	l := domain.Listing{
		ID:                form.DraftID,
		SupportImagesJSON: "[]",
		Quantity:          validate.Qty(form.QuantityRaw),
	}

	l.Title = form.Title
	if l.Title == "" {
		l.Title = sug.Title
	}

	l.Description = form.Description
	if l.Description == "" {
		l.Description = sug.Description
	}

	// Malformed price input clamps to 0 rather than falling back to the
	// suggestion: the seller typed something, so the suggestion no
	// longer applies.
	if price, edited := validate.Price(form.PriceRaw); edited {
		l.Price = price
	} else {
		l.Price = sug.Price
	}

	category, ok := validate.Category(form.Category)
	if !ok {
		if category, ok = validate.Category(sug.Category); !ok {
			category = domain.CategoryMiscellaneous
		}
	}
	l.Category = category

	// Category-conditional fields are never carried over from another
	// category's value.
	if l.Category == domain.CategoryClothes {
		if size, ok := validate.Size(form.Size); ok {
			l.Size = &size
		}
	}
	if l.Category == domain.CategoryBooks {
		if genre, ok := validate.Genre(form.Genre); ok {
			l.Genre = &genre
		}
	}

	if imageURL != "" {
		l.ImageURL = &imageURL
	}

	return l
}
