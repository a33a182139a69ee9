// Package grpc is the gRPC adapter of the chatbot. The ChatService is
// described by hand and carried by a JSON codec, next to the standard
// health service.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/gophbot/internal/logging"
	"github.com/dmitrijs2005/gophbot/internal/server/services"
)

type GRPCServer struct {
	address          string
	chat             *services.ChatService
	users            *services.UserService
	protectedMethods map[string]struct{}
	logger           logging.Logger
}

// NewGRPCServer prepares a server for address. Teach and ListHistory always
// need a token; Register only when registerRequiresAuth is set.
func NewGRPCServer(address string, l logging.Logger, cs *services.ChatService, us *services.UserService, registerRequiresAuth bool) *GRPCServer {
	protected := map[string]struct{}{
		MethodTeach:       {},
		MethodListHistory: {},
	}
	if registerRequiresAuth {
		protected[MethodRegister] = struct{}{}
	}
	return &GRPCServer{
		address:          address,
		chat:             cs,
		users:            us,
		protectedMethods: protected,
		logger:           l.With("module", "grpc_server"),
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	RegisterChatServiceServer(srv, &chatHandler{s})

	hs := health.NewServer()
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
