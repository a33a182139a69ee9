package repomanager

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophbot/internal/common"
	"github.com/dmitrijs2005/gophbot/internal/server/models"
)

func TestOpen_UnknownStorage(t *testing.T) {
	_, err := Open(context.Background(), "mongo", "")
	assert.ErrorContains(t, err, `unknown storage "mongo"`)
}

func TestOpen_Memory(t *testing.T) {
	m, err := Open(context.Background(), StorageMemory, "")
	require.NoError(t, err)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.InTx(ctx, func(ctx context.Context, r *Repositories) error {
		return r.Knowledge.Save(ctx, "q", "a")
	}))

	got, err := m.Repositories().Knowledge.Lookup(ctx, "q")
	require.NoError(t, err)
	assert.Equal(t, "a", got)
}

func TestOpen_SQLiteMigratesAndRollsBack(t *testing.T) {
	ctx := context.Background()
	m, err := Open(ctx, StorageSQLite, ":memory:")
	require.NoError(t, err)
	defer m.Close()

	r := m.Repositories()
	_, err = r.Users.Create(ctx, &models.User{UserName: "admin", PasswordHash: "h"})
	require.NoError(t, err)

	err = m.InTx(ctx, func(ctx context.Context, r *Repositories) error {
		if err := r.Knowledge.Save(ctx, "q", "a"); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &models.HistoryEntry{Prompt: "q", Answer: "a"}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	_, err = r.Knowledge.Lookup(ctx, "q")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	list, err := r.History.ListDescending(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// a second run finds nothing to apply
	require.NoError(t, m.RunMigrations(ctx))
}

func TestOpen_SQLiteFileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "data", "gophbot.db")

	m, err := Open(ctx, StorageSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, m.Repositories().Knowledge.Save(ctx, "q", "a"))
	require.NoError(t, m.Close())

	m, err = Open(ctx, StorageSQLite, dsn)
	require.NoError(t, err)
	defer m.Close()

	got, err := m.Repositories().Knowledge.Lookup(ctx, "q")
	require.NoError(t, err)
	assert.Equal(t, "a", got)
}
