package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gophbot/internal/fuzzy"
	"github.com/dmitrijs2005/gophbot/internal/intent"
	"github.com/dmitrijs2005/gophbot/internal/logging"
	"github.com/dmitrijs2005/gophbot/internal/server/config"
	"github.com/dmitrijs2005/gophbot/internal/server/models"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/repomanager"
)

var errStoreDown = errors.New("connection refused")

func testConfig(policy string) *config.Config {
	return &config.Config{
		TokenPolicy:                 policy,
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Minute,
		BcryptCost:                  bcrypt.MinCost,
	}
}

func newUserService(t *testing.T, m repomanager.RepositoryManager, policy string) *UserService {
	t.Helper()
	s, err := NewUserService(m, testConfig(policy), logging.Nop())
	require.NoError(t, err)
	return s
}

func newChatService(m repomanager.RepositoryManager) *ChatService {
	return NewChatService(m, intent.DefaultLexicon(), fuzzy.NewSuggester(fuzzy.DefaultLimit, fuzzy.DefaultCutoff), logging.Nop())
}

// brokenManager hands out stores whose every call fails.
type brokenManager struct {
	repos *repomanager.Repositories
}

func newBrokenManager() *brokenManager {
	return &brokenManager{repos: &repomanager.Repositories{
		Users:     brokenUsers{},
		Knowledge: brokenKnowledge{},
		History:   brokenHistory{},
	}}
}

func (m *brokenManager) RunMigrations(context.Context) error     { return errStoreDown }
func (m *brokenManager) Repositories() *repomanager.Repositories { return m.repos }
func (m *brokenManager) Close() error                            { return nil }
func (m *brokenManager) InTx(ctx context.Context, fn func(context.Context, *repomanager.Repositories) error) error {
	return fn(ctx, m.repos)
}

type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *models.User) (*models.User, error) {
	return nil, errStoreDown
}
func (brokenUsers) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, errStoreDown
}

type brokenKnowledge struct{}

func (brokenKnowledge) Lookup(context.Context, string) (string, error) { return "", errStoreDown }
func (brokenKnowledge) Save(context.Context, string, string) error     { return errStoreDown }
func (brokenKnowledge) AllQuestions(context.Context) ([]string, error) { return nil, errStoreDown }

type brokenHistory struct{}

func (brokenHistory) Append(context.Context, *models.HistoryEntry) error { return errStoreDown }
func (brokenHistory) ListDescending(context.Context) ([]models.HistoryEntry, error) {
	return nil, errStoreDown
}
