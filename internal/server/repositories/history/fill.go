package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophbot/internal/server/models"
)

func fill(e *models.HistoryEntry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.Timestamp = e.Timestamp.UTC()
}
