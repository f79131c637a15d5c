// Package classify suggests listing metadata from a detected item label.
//
// The classifier is an injected dependency with an explicit lifecycle so
// the table-lookup stub can later be swapped for a real model backend
// without touching callers.
package classify

import "context"

// Suggestion carries classifier-suggested listing fields. Callers merge
// these with user edits; an explicit user edit always wins.
type Suggestion struct {
	Title       string
	Price       float64
	Description string
	Category    string
	Tags        []string
}

type Classifier interface {
	// Classify maps an optional detected label to a suggestion. Unknown
	// or empty labels resolve to the Unknown sentinel entry; the only
	// error a Classify implementation may return for bad input is the
	// context's own error.
	Classify(ctx context.Context, label string) (Suggestion, error)
	Close() error
}
