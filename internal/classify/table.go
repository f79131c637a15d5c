package classify

import (
	"context"
	"strings"
	"time"
)

type tableEntry struct {
	Price       float64
	Description string
}

// Canned entries for the five known clothing classes. The Unknown
// sentinel covers everything else.
var defaultTable = map[string]tableEntry{
	"Pe shirt":    {150, "High-quality PE shirt, perfect condition. Ideal for physical education, sports, or casual wear. Well-maintained and ready to use."},
	"Pe pant":     {200, "Durable PE pants in excellent condition. Great for sports activities, physical education, or athletic use. Comfortable fit and quality material."},
	"Skirt":       {180, "Stylish skirt in good condition. Versatile piece suitable for casual or formal occasions. Quality fabric and neat finish."},
	"White Shirt": {120, "Clean white shirt in perfect condition. Versatile classic piece suitable for various occasions. Quality fabric and excellent condition."},
	"UC VEST":     {250, "UC branded vest in excellent condition. Perfect for university events, casual wear, or sports activities. Quality embroidered logo."},
}

const unknownDescription = "No description available."

// TableClassifier resolves labels against a fixed lookup table and
// simulates the latency of a network-bound model.
type TableClassifier struct {
	table map[string]tableEntry
	delay time.Duration
}

// NewTableClassifier builds a classifier over the default table. A zero
// delay is valid and is what tests inject.
func NewTableClassifier(delay time.Duration) *TableClassifier {
	return &TableClassifier{table: defaultTable, delay: delay}
}

func (t *TableClassifier) Classify(ctx context.Context, label string) (Suggestion, error) {
	if t.delay > 0 {
		timer := time.NewTimer(t.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Suggestion{}, ctx.Err()
		case <-timer.C:
		}
	}

	entry, ok := t.table[label]
	if !ok {
		return Suggestion{
			Title:       "",
			Price:       0,
			Description: unknownDescription,
			Category:    "miscellaneous",
			Tags:        nil,
		}, nil
	}
	tag := strings.ToLower(strings.ReplaceAll(label, " ", ""))
	return Suggestion{
		Title:       label,
		Price:       entry.Price,
		Description: entry.Description,
		Category:    "clothes",
		Tags:        []string{tag},
	}, nil
}

func (t *TableClassifier) Close() error { return nil }

// KnownLabels lists the labels the table resolves, for seeding and tests.
func KnownLabels() []string {
	out := make([]string, 0, len(defaultTable))
	for l := range defaultTable {
		out = append(out, l)
	}
	return out
}
