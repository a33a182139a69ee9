package history

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophbot/internal/dbx"
	"github.com/dmitrijs2005/gophbot/internal/server/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// Timestamps are stored as Unix nanoseconds so they sort numerically.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, e *models.HistoryEntry) error {
	fill(e)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO history (id, created_at, prompt, answer) VALUES (?, ?, ?, ?)`,
		e.ID, e.Timestamp.UnixNano(), e.Prompt, e.Answer)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListDescending(ctx context.Context) ([]models.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, prompt, answer FROM history ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.HistoryEntry
	for rows.Next() {
		var (
			e       models.HistoryEntry
			created int64
		)
		if err := rows.Scan(&e.ID, &created, &e.Prompt, &e.Answer); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Timestamp = time.Unix(0, created).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
