package knowledge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophbot/internal/common"
	"github.com/dmitrijs2005/gophbot/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Lookup(ctx context.Context, question string) (string, error) {
	query := `SELECT answer FROM knowledge WHERE question = $1`

	var answer string
	if err := r.db.QueryRowContext(ctx, query, question).Scan(&answer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return answer, nil
}

func (r *PostgresRepository) Save(ctx context.Context, question, answer string) error {
	query :=
		`INSERT INTO knowledge (question, answer)
		 VALUES ($1, $2)
		 ON CONFLICT (question) DO UPDATE
		 SET answer = EXCLUDED.answer, updated_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, question, answer); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) AllQuestions(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT question FROM knowledge ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

func scanQuestions(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
