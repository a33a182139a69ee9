package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophbot/internal/logging"
)

// Server runs the REST API until its context is cancelled.
type Server struct {
	address         string
	handler         http.Handler
	shutdownTimeout time.Duration
	logger          logging.Logger
}

func NewServer(address string, h http.Handler, shutdownTimeout time.Duration, l logging.Logger) *Server {
	return &Server{
		address:         address,
		handler:         h,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "http_server"),
	}
}

// Run listens on the configured address. It returns nil after a graceful
// shutdown triggered by ctx.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}
