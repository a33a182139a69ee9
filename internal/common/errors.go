// Package common defines shared constants and sentinel errors used across
// the storage, service and transport layers. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")
	ErrorUnavailable  = errors.New("storage unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Reason returns the caller-safe text for err: the message of the first
// sentinel it wraps, or the generic internal error text.
func Reason(err error) string {
	for _, s := range []error{
		ErrorValidation,
		ErrorUnauthorized,
		ErrorAlreadyExists,
		ErrorNotFound,
		ErrorUnavailable,
	} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return ErrorInternal.Error()
}
