package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophbot/internal/common"
	"github.com/dmitrijs2005/gophbot/internal/dbx"
	"github.com/dmitrijs2005/gophbot/internal/server/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// IDs are generated here; created_at is stored as Unix nanoseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		id, user.UserName, user.PasswordHash, now.UnixNano())
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	return user, nil
}

func (r *SQLiteRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	var (
		user    models.User
		created int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`,
		userName).Scan(&user.ID, &user.UserName, &user.PasswordHash, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.CreatedAt = time.Unix(0, created).UTC()
	return &user, nil
}
