package knowledge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophbot/internal/common"
	"github.com/dmitrijs2005/gophbot/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Lookup(ctx context.Context, question string) (string, error) {
	var answer string
	err := r.db.QueryRowContext(ctx, `SELECT answer FROM knowledge WHERE question = ?`, question).Scan(&answer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return answer, nil
}

// Save upserts by question; the row keeps its original position.
func (r *SQLiteRepository) Save(ctx context.Context, question, answer string) error {
	query := `INSERT INTO knowledge (question, answer) VALUES (?, ?)
		ON CONFLICT(question) DO UPDATE SET answer = excluded.answer`
	if _, err := r.db.ExecContext(ctx, query, question, answer); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) AllQuestions(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT question FROM knowledge ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}
