package history

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/gophbot/internal/server/models"
)

// MemoryRepository is an in-process log. It is safe for concurrent use.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []models.HistoryEntry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Append(_ context.Context, e *models.HistoryEntry) error {
	fill(e)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *MemoryRepository) ListDescending(context.Context) ([]models.HistoryEntry, error) {
	r.mu.RLock()
	out := make([]models.HistoryEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	r.mu.RUnlock()

	// out is newest-inserted first, so a stable sort keeps that order for
	// equal timestamps.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}
