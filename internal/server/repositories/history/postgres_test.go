package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophbot/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresAppend(t *testing.T) {
	r, mock := newRepoWithMock(t)
	ts := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+history\s*\(id,\s*created_at,\s*prompt,\s*answer\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*$`).
		WithArgs("h-1", ts, "hola", "¡Hola!").
		WillReturnResult(sqlmock.NewResult(1, 1))

	e := &models.HistoryEntry{ID: "h-1", Timestamp: ts, Prompt: "hola", Answer: "¡Hola!"}
	require.NoError(t, r.Append(context.Background(), e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAppend_DBError(t *testing.T) {
	r, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+history`).WillReturnError(errors.New("db down"))

	err := r.Append(context.Background(), &models.HistoryEntry{Prompt: "p", Answer: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestPostgresListDescending(t *testing.T) {
	r, mock := newRepoWithMock(t)
	t1 := time.Date(2025, 3, 15, 12, 0, 1, 0, time.UTC)
	t0 := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*created_at,\s*prompt,\s*answer\s+FROM\s+history\s+ORDER\s+BY\s+created_at\s+DESC,\s*seq\s+DESC\s*$`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "prompt", "answer"}).
			AddRow("b", t1, "gracias", "¡De nada!").
			AddRow("a", t0, "hola", "¡Hola!"))

	list, err := r.ListDescending(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "hola", list[1].Prompt)
	assert.True(t, list[0].Timestamp.Equal(t1))
}

func TestPostgresListDescending_QueryError(t *testing.T) {
	r, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("timeout"))

	_, err := r.ListDescending(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}
