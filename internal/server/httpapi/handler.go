// Package httpapi is the REST adapter of the chatbot: JSON routes over the
// chat and user services, with logging, recovery and CORS middleware.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophbot/internal/common"
	"github.com/dmitrijs2005/gophbot/internal/logging"
	"github.com/dmitrijs2005/gophbot/internal/server/services"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

// Handler serves the REST API.
type Handler struct {
	chat   *services.ChatService
	users  *services.UserService
	logger logging.Logger
}

func NewHandler(chat *services.ChatService, users *services.UserService, l logging.Logger) *Handler {
	return &Handler{
		chat:   chat,
		users:  users,
		logger: l.With("module", "http_api"),
	}
}

// Options tune route protection and CORS.
type Options struct {
	RegisterRequiresAuth bool
	CORSAllowedOrigin    string
}

// NewServeMux creates an http.Handler with all routes registered and
// wrapped with, outermost first, logging, recovery and CORS middleware.
func NewServeMux(h *Handler, opts Options) http.Handler {
	guard := RequireToken(h.users, h.logger)
	mux := http.NewServeMux()

	mux.HandleFunc("POST /chat", h.Chat)
	mux.HandleFunc("POST /login", h.Login)
	if opts.RegisterRequiresAuth {
		mux.Handle("POST /register", guard(http.HandlerFunc(h.Register)))
	} else {
		mux.HandleFunc("POST /register", h.Register)
	}
	mux.Handle("POST /respuesta", guard(http.HandlerFunc(h.Teach)))
	mux.Handle("GET /historial", guard(http.HandlerFunc(h.History)))
	mux.HandleFunc("GET /health", h.Health)

	origin := opts.CORSAllowedOrigin
	if origin == "" {
		origin = "*"
	}
	wrapped := corsMiddleware(origin, mux)
	wrapped = recoveryMiddleware(h.logger, wrapped)
	wrapped = loggingMiddleware(h.logger, wrapped)

	return wrapped
}

// Chat answers one prompt.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decode(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	reply, err := h.chat.Resolve(r.Context(), req.Prompt)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Respuesta: reply.Text})
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// Register creates a user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	if _, err := h.users.Register(r.Context(), req.Username, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

// Teach stores an answer for a question.
func (h *Handler) Teach(w http.ResponseWriter, r *http.Request) {
	var req teachRequest
	if err := decode(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.chat.Teach(r.Context(), req.Prompt, req.Respuesta); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Respuesta guardada correctamente"})
}

// History lists the conversation log, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.chat.History(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]HistoryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toHistoryResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads one JSON object from the body. Malformed or oversized
// bodies are validation errors.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", common.ErrorValidation)
		}
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}
