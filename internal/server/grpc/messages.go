package grpc

type ChatRequest struct {
	Prompt string `json:"prompt"`
}

type ChatResponse struct {
	Respuesta   string   `json:"respuesta"`
	Outcome     string   `json:"outcome"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
}

type TeachRequest struct {
	Prompt    string `json:"prompt"`
	Respuesta string `json:"respuesta"`
}

type TeachResponse struct {
	Message string `json:"message"`
}

type ListHistoryRequest struct{}

type HistoryEntry struct {
	ID        string `json:"_id"`
	Fecha     string `json:"fecha"`
	Pregunta  string `json:"pregunta"`
	Respuesta string `json:"respuesta"`
}

type ListHistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}
