package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophbot/internal/server/repositories/history"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/knowledge"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. Nothing
// survives a restart.
type MemoryRepositoryManager struct {
	repos *Repositories
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{repos: &Repositories{
		Users:     users.NewMemoryRepository(),
		Knowledge: knowledge.NewMemoryRepository(),
		History:   history.NewMemoryRepository(),
	}}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Repositories() *Repositories { return m.repos }

// InTx runs fn directly. Each store call is atomic on its own, and no
// caller needs rollback of the memory stores.
func (m *MemoryRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, r *Repositories) error) error {
	return fn(ctx, m.repos)
}

func (m *MemoryRepositoryManager) Close() error { return nil }
