package repomanager

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/gophbot/internal/dbx"
	"github.com/dmitrijs2005/gophbot/internal/server/migrations"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/history"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/knowledge"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct {
	db *sql.DB
}

// NewPostgresRepositoryManager connects through the pgx stdlib driver.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := dbx.Open(ctx, "pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresRepositoryManager{db: db}, nil
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Knowledge returns a knowledge.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Knowledge(db dbx.DBTX) knowledge.Repository {
	return knowledge.NewPostgresRepository(db)
}

// History returns a history.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) History(db dbx.DBTX) history.Repository {
	return history.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) bind(db dbx.DBTX) *Repositories {
	return &Repositories{Users: m.Users(db), Knowledge: m.Knowledge(db), History: m.History(db)}
}

func (m *PostgresRepositoryManager) Repositories() *Repositories {
	return m.bind(m.db)
}

func (m *PostgresRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, r *Repositories) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, m.bind(tx))
	})
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the manager's database.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	return runMigrations(ctx, m.db, "pgx", migrations.PostgresDir)
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// gooseMu serializes migrations: goose keeps its dialect and base FS in
// package state.
var gooseMu sync.Mutex

func runMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, dir)
}
