// Package knowledge stores taught question/answer pairs keyed by the
// normalized question text.
package knowledge

import "context"

// Repository is the knowledge store. Callers pass questions already
// normalized; the store compares them byte for byte.
type Repository interface {
	// Lookup returns the answer for question or common.ErrorNotFound.
	Lookup(ctx context.Context, question string) (string, error)
	// Save inserts the pair, replacing the answer of an existing question.
	Save(ctx context.Context, question, answer string) error
	// AllQuestions lists every stored question in insertion order.
	AllQuestions(ctx context.Context) ([]string, error)
}
