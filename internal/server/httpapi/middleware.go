package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophbot/internal/common"
	"github.com/dmitrijs2005/gophbot/internal/logging"
	"github.com/dmitrijs2005/gophbot/internal/server/auth"
)

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs each HTTP request with method, path, status, and duration.
func loggingMiddleware(logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		logger.Info(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// recoveryMiddleware turns a handler panic into a 500 response.
func recoveryMiddleware(logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error(r.Context(), "panic recovered",
					"panic", v,
					"path", r.URL.Path,
				)
				writeError(w, http.StatusInternalServerError, common.ErrorInternal.Error())
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// corsMiddleware allows origin to call the API from a browser. Preflight
// requests are answered here and never reach the routes.
func corsMiddleware(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if origin != "*" {
			h.Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TokenValidator resolves an Authorization header value to a user name.
type TokenValidator interface {
	ValidateHeader(ctx context.Context, header string) (string, error)
}

// RequireToken rejects requests without a valid bearer token with 401.
// Accepted requests carry the user name in their context.
func RequireToken(v TokenValidator, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userName, err := v.ValidateHeader(r.Context(), r.Header.Get(common.AuthorizationHeaderName))
			if err != nil {
				logger.Debug(r.Context(), "request rejected", "path", r.URL.Path, "error", err)
				writeServiceError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUserName(r.Context(), userName)))
		})
	}
}
