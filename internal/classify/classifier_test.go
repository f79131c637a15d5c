package classify_test

import (
	"context"
	"testing"
	"time"

	"unimart/internal/classify"
)

func TestTableClassifierKnownLabels(t *testing.T) {
	cl := classify.NewTableClassifier(0)
	defer cl.Close()

	cases := []struct {
		label string
		price float64
		tag   string
	}{
		{"Pe shirt", 150, "peshirt"},
		{"Pe pant", 200, "pepant"},
		{"Skirt", 180, "skirt"},
		{"White Shirt", 120, "whiteshirt"},
		{"UC VEST", 250, "ucvest"},
	}

	for _, tc := range cases {
		sug, err := cl.Classify(context.Background(), tc.label)
		if err != nil {
			t.Fatalf("%s: %v", tc.label, err)
		}
		if sug.Title != tc.label {
			t.Errorf("%s: title=%q", tc.label, sug.Title)
		}
		if sug.Price != tc.price {
			t.Errorf("%s: price=%v want %v", tc.label, sug.Price, tc.price)
		}
		if sug.Description == "" || sug.Description == "No description available." {
			t.Errorf("%s: missing canned description", tc.label)
		}
		if sug.Category != "clothes" {
			t.Errorf("%s: category=%q", tc.label, sug.Category)
		}
		if len(sug.Tags) != 1 || sug.Tags[0] != tc.tag {
			t.Errorf("%s: tags=%v want [%s]", tc.label, sug.Tags, tc.tag)
		}
	}
}

func TestTableClassifierUnknown(t *testing.T) {
	cl := classify.NewTableClassifier(0)
	defer cl.Close()

	for _, label := range []string{"", "anything-unknown"} {
		sug, err := cl.Classify(context.Background(), label)
		if err != nil {
			t.Fatalf("label=%q: %v", label, err)
		}
		if sug.Title != "" {
			t.Errorf("label=%q: title=%q want empty", label, sug.Title)
		}
		if sug.Price != 0 {
			t.Errorf("label=%q: price=%v want 0", label, sug.Price)
		}
		if sug.Description != "No description available." {
			t.Errorf("label=%q: description=%q", label, sug.Description)
		}
		if sug.Category != "miscellaneous" {
			t.Errorf("label=%q: category=%q", label, sug.Category)
		}
		if len(sug.Tags) != 0 {
			t.Errorf("label=%q: tags=%v want empty", label, sug.Tags)
		}
	}
}

func TestTableClassifierCancellation(t *testing.T) {
	cl := classify.NewTableClassifier(5 * time.Second)
	defer cl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cl.Classify(ctx, "Pe shirt"); err != context.Canceled {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
