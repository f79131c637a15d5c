package services_test

import (
	"reflect"
	"testing"

	"unimart/internal/classify"
	"unimart/internal/services"
)

func peShirtSuggestion() classify.Suggestion {
	return classify.Suggestion{
		Title:       "Pe shirt",
		Price:       150,
		Description: "High-quality PE shirt, perfect condition.",
		Category:    "clothes",
		Tags:        []string{"peshirt"},
	}
}

func TestNormalizeSuggestionOnly(t *testing.T) {
	l := services.Normalize(services.ListingForm{}, "", peShirtSuggestion())

	if l.Title != "Pe shirt" {
		t.Errorf("title=%q", l.Title)
	}
	if l.Price != 150 {
		t.Errorf("price=%v", l.Price)
	}
	if l.Category != "clothes" {
		t.Errorf("category=%q", l.Category)
	}
	if l.Size != nil {
		t.Errorf("size should stay unset without a chosen size, got %v", *l.Size)
	}
	if l.Quantity != 1 {
		t.Errorf("quantity=%d want 1", l.Quantity)
	}
	if l.ImageURL != nil {
		t.Errorf("image url should be nil without a photo")
	}
	if l.SupportImagesJSON != "[]" {
		t.Errorf("support images=%q", l.SupportImagesJSON)
	}
}

func TestNormalizeUserEditsWin(t *testing.T) {
	form := services.ListingForm{
		Title:       "Barely worn PE shirt",
		PriceRaw:    "99.50",
		Description: "Worn twice.",
		Category:    "clothes",
		Size:        "M",
		QuantityRaw: "2",
	}
	l := services.Normalize(form, "https://cdn.test/p.jpg", peShirtSuggestion())

	if l.Title != "Barely worn PE shirt" {
		t.Errorf("title=%q", l.Title)
	}
	if l.Price != 99.50 {
		t.Errorf("price=%v", l.Price)
	}
	if l.Description != "Worn twice." {
		t.Errorf("description=%q", l.Description)
	}
	if l.Size == nil || *l.Size != "M" {
		t.Errorf("size=%v", l.Size)
	}
	if l.Quantity != 2 {
		t.Errorf("quantity=%d", l.Quantity)
	}
	if l.ImageURL == nil || *l.ImageURL != "https://cdn.test/p.jpg" {
		t.Errorf("image url=%v", l.ImageURL)
	}
}

func TestNormalizeMalformedPriceClampsToZero(t *testing.T) {
	for _, raw := range []string{"abc", "12.3.4", "-5", "₱150"} {
		l := services.Normalize(services.ListingForm{PriceRaw: raw}, "", peShirtSuggestion())
		if l.Price != 0 {
			t.Errorf("price %q normalized to %v, want 0", raw, l.Price)
		}
	}
}

func TestNormalizeCategoryConditionalFields(t *testing.T) {
	// A size never survives a non-clothes category.
	l := services.Normalize(services.ListingForm{Category: "books", Size: "M", Genre: "Textbook"}, "", classify.Suggestion{})
	if l.Size != nil {
		t.Errorf("books listing has size=%v", *l.Size)
	}
	if l.Genre == nil || *l.Genre != "Textbook" {
		t.Errorf("genre=%v", l.Genre)
	}

	// And a genre never survives a non-books category.
	l = services.Normalize(services.ListingForm{Category: "clothes", Size: "L", Genre: "Textbook"}, "", classify.Suggestion{})
	if l.Genre != nil {
		t.Errorf("clothes listing has genre=%v", *l.Genre)
	}
	if l.Size == nil || *l.Size != "L" {
		t.Errorf("size=%v", l.Size)
	}

	for _, cat := range []string{"miscellaneous", "gadgets", "stationary", "other"} {
		l := services.Normalize(services.ListingForm{Category: cat, Size: "M", Genre: "Fiction"}, "", classify.Suggestion{})
		if l.Size != nil || l.Genre != nil {
			t.Errorf("category %s carried size/genre: %v %v", cat, l.Size, l.Genre)
		}
	}
}

func TestNormalizeUnknownCategoryFallsBack(t *testing.T) {
	l := services.Normalize(services.ListingForm{Category: "vehicles"}, "", classify.Suggestion{Category: "nonsense"})
	if l.Category != "miscellaneous" {
		t.Errorf("category=%q want miscellaneous", l.Category)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	form := services.ListingForm{
		DraftID:  "draft-1",
		Title:    "UC VEST",
		PriceRaw: "250",
		Category: "clothes",
		Size:     "L",
	}
	a := services.Normalize(form, "https://cdn.test/v.jpg", peShirtSuggestion())
	b := services.Normalize(form, "https://cdn.test/v.jpg", peShirtSuggestion())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("normalize not idempotent:\n%+v\n%+v", a, b)
	}
}
