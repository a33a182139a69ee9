package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophbot/internal/common"
	"github.com/dmitrijs2005/gophbot/internal/server/models"
)

// writeJSON writes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps a service error onto its status code. Only the
// sentinel text reaches the client.
func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), common.Reason(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, common.ErrorUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type chatRequest struct {
	Prompt string `json:"prompt"`
}

type chatResponse struct {
	Respuesta string `json:"respuesta"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type teachRequest struct {
	Prompt    string `json:"prompt"`
	Respuesta string `json:"respuesta"`
}

// HistoryResponse is one row of GET /historial.
type HistoryResponse struct {
	ID        string `json:"_id"`
	Fecha     string `json:"fecha"`
	Pregunta  string `json:"pregunta"`
	Respuesta string `json:"respuesta"`
}

func toHistoryResponse(e models.HistoryEntry) HistoryResponse {
	return HistoryResponse{
		ID:        e.ID,
		Fecha:     e.Timestamp.In(time.UTC).Format(common.HistoryTimeLayout),
		Pregunta:  e.Prompt,
		Respuesta: e.Answer,
	}
}
