// Package server initializes and runs the chatbot service.
// It opens the configured storage backend, bootstraps the admin account,
// serves the REST and gRPC APIs, and shuts both down gracefully on a signal.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gophbot/internal/fuzzy"
	"github.com/dmitrijs2005/gophbot/internal/intent"
	"github.com/dmitrijs2005/gophbot/internal/logging"
	"github.com/dmitrijs2005/gophbot/internal/server/config"
	"github.com/dmitrijs2005/gophbot/internal/server/httpapi"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophbot/internal/server/services"

	gs "github.com/dmitrijs2005/gophbot/internal/server/grpc"
)

// Services is the storage plus the business services built on it. The
// service and the trainer share it.
type Services struct {
	Manager repomanager.RepositoryManager
	Chat    *services.ChatService
	Users   *services.UserService
}

// OpenServices opens storage, loads the lexicon and makes sure the admin
// account exists.
func OpenServices(ctx context.Context, c *config.Config, logger logging.Logger) (*Services, error) {
	lex := intent.DefaultLexicon()
	if c.LexiconPath != "" {
		var err error
		if lex, err = intent.LoadLexicon(c.LexiconPath); err != nil {
			return nil, fmt.Errorf("lexicon: %w", err)
		}
	}

	m, err := repomanager.Open(ctx, c.Storage, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us, err := services.NewUserService(m, c, logger)
	if err != nil {
		_ = m.Close()
		return nil, err
	}

	created, err := us.EnsureAdmin(ctx, c.AdminUsername, c.AdminPassword)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("admin bootstrap: %w", err)
	}
	if created {
		logger.Warn(ctx, "admin account created", "username", c.AdminUsername)
	}

	cs := services.NewChatService(m, lex, fuzzy.NewSuggester(c.SuggestionLimit, c.SuggestionCutoff), logger)

	return &Services{Manager: m, Chat: cs, Users: us}, nil
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	services *Services
}

// NewApp builds the logger described by c, writing to w, and opens the
// services.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, w)
	if err != nil {
		return nil, err
	}

	s, err := OpenServices(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	return &App{config: c, logger: logger, services: s}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves both APIs until ctx ends, a signal arrives or one server
// fails, then releases the storage.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage, "token_policy", app.services.Users.Policy())

	app.initSignalHandler(cancelFunc)

	h := httpapi.NewHandler(app.services.Chat, app.services.Users, app.logger)
	mux := httpapi.NewServeMux(h, httpapi.Options{
		RegisterRequiresAuth: app.config.RegisterRequiresAuth,
		CORSAllowedOrigin:    app.config.CORSAllowedOrigin,
	})
	httpServer := httpapi.NewServer(app.config.HTTPAddr, mux, app.config.ShutdownTimeout, app.logger)
	grpcServer := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.services.Chat, app.services.Users, app.config.RegisterRequiresAuth)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpServer.Run(gctx) })
	g.Go(func() error { return grpcServer.Run(gctx) })

	err := g.Wait()
	if cerr := app.services.Manager.Close(); cerr != nil {
		app.logger.Error(ctx, "closing storage", "error", cerr)
	}
	if err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "Stopped")
	return nil
}
