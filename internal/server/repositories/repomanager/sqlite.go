package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophbot/internal/dbx"
	"github.com/dmitrijs2005/gophbot/internal/filex"
	"github.com/dmitrijs2005/gophbot/internal/server/migrations"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/history"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/knowledge"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/users"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends repositories over a single-file (or
// in-memory) SQLite database. The pool is limited to one connection, which
// serializes writers and keeps a ":memory:" database alive across calls.
type SQLiteRepositoryManager struct {
	db *sql.DB
}

// NewSQLiteRepositoryManager opens dsn, creating the directory of a
// file-backed database first.
func NewSQLiteRepositoryManager(ctx context.Context, dsn string) (*SQLiteRepositoryManager, error) {
	if path := filex.SQLitePath(dsn); path != "" {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
	}
	db, err := dbx.Open(ctx, "sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return &SQLiteRepositoryManager{db: db}, nil
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Knowledge(db dbx.DBTX) knowledge.Repository {
	return knowledge.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) History(db dbx.DBTX) history.Repository {
	return history.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) bind(db dbx.DBTX) *Repositories {
	return &Repositories{Users: m.Users(db), Knowledge: m.Knowledge(db), History: m.History(db)}
}

func (m *SQLiteRepositoryManager) Repositories() *Repositories {
	return m.bind(m.db)
}

func (m *SQLiteRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, r *Repositories) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, m.bind(tx))
	})
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	return runMigrations(ctx, m.db, "sqlite3", migrations.SQLiteDir)
}

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}
