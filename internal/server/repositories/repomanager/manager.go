// Package repomanager opens a storage backend and hands out the credential,
// knowledge and history repositories bound to it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophbot/internal/server/repositories/history"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/knowledge"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/users"
)

// Storage backend names accepted by Open.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

// Repositories groups the stores bound to one database handle.
type Repositories struct {
	Users     users.Repository
	Knowledge knowledge.Repository
	History   history.Repository
}

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// Repositories returns stores that run each call on its own.
	Repositories() *Repositories
	// InTx runs fn with stores sharing one transaction. It commits when fn
	// returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(ctx context.Context, r *Repositories) error) error
	Close() error
}

// Open connects to the named backend and applies pending migrations.
func Open(ctx context.Context, storage, dsn string) (RepositoryManager, error) {
	var (
		m   RepositoryManager
		err error
	)
	switch storage {
	case StoragePostgres:
		m, err = NewPostgresRepositoryManager(ctx, dsn)
	case StorageSQLite:
		m, err = NewSQLiteRepositoryManager(ctx, dsn)
	case StorageMemory:
		m = NewMemoryRepositoryManager()
	default:
		return nil, fmt.Errorf("unknown storage %q", storage)
	}
	if err != nil {
		return nil, err
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return m, nil
}
