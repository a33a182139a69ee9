package knowledge

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophbot/internal/common"
)

// MemoryRepository keeps questions in insertion order with an index for
// exact lookups. It is safe for concurrent use.
type MemoryRepository struct {
	mu        sync.RWMutex
	questions []string
	answers   map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{answers: make(map[string]string)}
}

func (r *MemoryRepository) Lookup(_ context.Context, question string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.answers[question]
	if !ok {
		return "", common.ErrorNotFound
	}
	return a, nil
}

func (r *MemoryRepository) Save(_ context.Context, question, answer string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.answers[question]; !ok {
		r.questions = append(r.questions, question)
	}
	r.answers[question] = answer
	return nil
}

func (r *MemoryRepository) AllQuestions(context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.questions))
	copy(out, r.questions)
	return out, nil
}
