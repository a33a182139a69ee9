// Package history is the append-only conversation log.
package history

import (
	"context"

	"github.com/dmitrijs2005/gophbot/internal/server/models"
)

// Repository appends entries and lists them newest first. Entries that share
// a timestamp come back in reverse insertion order.
type Repository interface {
	// Append stores e. An empty ID is replaced with a new UUID and a zero
	// Timestamp with the current time; e is updated in place.
	Append(ctx context.Context, e *models.HistoryEntry) error
	ListDescending(ctx context.Context) ([]models.HistoryEntry, error)
}
