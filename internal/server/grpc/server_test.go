package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/dmitrijs2005/gophbot/internal/fuzzy"
	"github.com/dmitrijs2005/gophbot/internal/intent"
	"github.com/dmitrijs2005/gophbot/internal/logging"
	"github.com/dmitrijs2005/gophbot/internal/server/config"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophbot/internal/server/services"
)

const adminToken = "YWRtaW46YWRtaW4xMjM="

func newTestServer(t *testing.T, registerRequiresAuth bool) *GRPCServer {
	t.Helper()
	m := repomanager.NewMemoryRepositoryManager()
	cfg := &config.Config{
		TokenPolicy:                 "credential",
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Minute,
		BcryptCost:                  bcrypt.MinCost,
	}
	us, err := services.NewUserService(m, cfg, logging.Nop())
	require.NoError(t, err)
	_, err = us.EnsureAdmin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	cs := services.NewChatService(m, intent.DefaultLexicon(), fuzzy.NewSuggester(3, 0.6), logging.Nop())

	return NewGRPCServer("127.0.0.1:0", logging.Nop(), cs, us, registerRequiresAuth)
}

// dial starts s on an in-memory listener and returns a connected client.
func dial(t *testing.T, s *GRPCServer) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("server did not stop within timeout after context cancel")
		}
	})
	return conn
}

func withToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func TestChatService_EndToEnd(t *testing.T) {
	c := NewClient(dial(t, newTestServer(t, true)))
	ctx := context.Background()

	resp, err := c.Chat(ctx, &ChatRequest{Prompt: "hola"})
	require.NoError(t, err)
	assert.Equal(t, "¡Hola! ¿En qué puedo ayudarte?", resp.Respuesta)
	assert.Equal(t, "intent", resp.Outcome)

	login, err := c.Login(ctx, &LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, adminToken, login.Token)

	_, err = c.Teach(ctx, &TeachRequest{Prompt: "cual es tu nombre", Respuesta: "Me llamo Bot"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	teach, err := c.Teach(withToken(ctx, login.Token), &TeachRequest{Prompt: "cual es tu nombre", Respuesta: "Me llamo Bot"})
	require.NoError(t, err)
	assert.Equal(t, "Respuesta guardada correctamente", teach.Message)

	resp, err = c.Chat(ctx, &ChatRequest{Prompt: "cual es tu nombr"})
	require.NoError(t, err)
	assert.Equal(t, "suggested", resp.Outcome)
	assert.Equal(t, []string{"cual es tu nombre"}, resp.Suggestions)

	hist, err := c.ListHistory(withToken(ctx, login.Token), &ListHistoryRequest{})
	require.NoError(t, err)
	require.Len(t, hist.Entries, 1)
	assert.Equal(t, "hola", hist.Entries[0].Pregunta)
}

func TestChatService_ErrorCodes(t *testing.T) {
	c := NewClient(dial(t, newTestServer(t, true)))
	ctx := context.Background()

	_, err := c.Chat(ctx, &ChatRequest{Prompt: " "})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, "validation error", status.Convert(err).Message())

	_, err = c.Login(ctx, &LoginRequest{Username: "admin", Password: "bad"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.ListHistory(withToken(ctx, "garbage"), &ListHistoryRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.Register(ctx, &RegisterRequest{Username: "ana", Password: "x"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.Register(withToken(ctx, adminToken), &RegisterRequest{Username: "admin", Password: "x"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestRegister_Open(t *testing.T) {
	c := NewClient(dial(t, newTestServer(t, false)))
	ctx := context.Background()

	resp, err := c.Register(ctx, &RegisterRequest{Username: "ana", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", resp.Message)

	_, err = c.Login(ctx, &LoginRequest{Username: "ana", Password: "secreto"})
	assert.NoError(t, err)
}

func TestHealth(t *testing.T) {
	conn := dial(t, newTestServer(t, true))

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: serviceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	s := newTestServer(t, true)
	s.address = "127.0.0.1:99999"

	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}
