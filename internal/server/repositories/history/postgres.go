package history

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophbot/internal/dbx"
	"github.com/dmitrijs2005/gophbot/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, e *models.HistoryEntry) error {
	fill(e)

	query :=
		`INSERT INTO history (id, created_at, prompt, answer)
		 VALUES ($1, $2, $3, $4)
		 `

	if _, err := r.db.ExecContext(ctx, query, e.ID, e.Timestamp, e.Prompt, e.Answer); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListDescending(ctx context.Context) ([]models.HistoryEntry, error) {
	query :=
		`SELECT id, created_at, prompt, answer FROM history
		 ORDER BY created_at DESC, seq DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Prompt, &e.Answer); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Timestamp = e.Timestamp.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
