package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gophbot/internal/common"
)

// chatHandler implements ChatServiceServer on top of the services.
type chatHandler struct {
	s *GRPCServer
}

func (h *chatHandler) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	reply, err := h.s.chat.Resolve(ctx, req.Prompt)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ChatResponse{
		Respuesta:   reply.Text,
		Outcome:     reply.Outcome.String(),
		Suggestions: reply.Suggestions,
	}, nil
}

func (h *chatHandler) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	token, err := h.s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &LoginResponse{Token: token}, nil
}

func (h *chatHandler) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if _, err := h.s.users.Register(ctx, req.Username, req.Password); err != nil {
		return nil, toStatus(err)
	}
	h.s.logger.Info(ctx, "Registered", "username", req.Username)
	return &RegisterResponse{Message: "User registered successfully"}, nil
}

func (h *chatHandler) Teach(ctx context.Context, req *TeachRequest) (*TeachResponse, error) {
	if err := h.s.chat.Teach(ctx, req.Prompt, req.Respuesta); err != nil {
		return nil, toStatus(err)
	}
	return &TeachResponse{Message: "Respuesta guardada correctamente"}, nil
}

func (h *chatHandler) ListHistory(ctx context.Context, _ *ListHistoryRequest) (*ListHistoryResponse, error) {
	entries, err := h.s.chat.History(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntry{
			ID:        e.ID,
			Fecha:     e.Timestamp.In(time.UTC).Format(common.HistoryTimeLayout),
			Pregunta:  e.Prompt,
			Respuesta: e.Answer,
		})
	}
	return &ListHistoryResponse{Entries: out}, nil
}

// toStatus maps a service error onto a gRPC status carrying only the
// sentinel text.
func toStatus(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, common.ErrorValidation):
		code = codes.InvalidArgument
	case errors.Is(err, common.ErrorUnauthorized):
		code = codes.Unauthenticated
	case errors.Is(err, common.ErrorAlreadyExists):
		code = codes.AlreadyExists
	case errors.Is(err, common.ErrorUnavailable):
		code = codes.Unavailable
	default:
		code = codes.Internal
	}
	return status.Error(code, common.Reason(err))
}
