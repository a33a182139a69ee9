package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gophbot/internal/common"
	"github.com/dmitrijs2005/gophbot/internal/server/auth"
)

// accessTokenInterceptor checks the bearer token of protected methods and
// puts the user name into the handler context.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if _, ok := s.protectedMethods[info.FullMethod]; ok {

		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AuthorizationHeaderName)
			if len(values) > 0 {
				header = values[0]
			}
		}

		userName, err := s.users.ValidateHeader(ctx, header)
		if err != nil {
			s.logger.Debug(ctx, "request rejected", "method", info.FullMethod, "error", err)
			return nil, toStatus(err)
		}

		ctx = auth.WithUserName(ctx, userName)
	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "grpc request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return resp, err
}
