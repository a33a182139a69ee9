package auth

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophbot/internal/common"
)

// ParseBearer extracts the token from an Authorization value of the form
// "Bearer <token>".
func ParseBearer(header string) (string, error) {
	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok {
		return "", common.ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", common.ErrInvalidToken
	}
	return token, nil
}

type ctxKey string

const userNameKey ctxKey = "userName"

// WithUserName stores the authenticated user name in ctx.
func WithUserName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, userNameKey, name)
}

// UserNameFromContext returns the name stored by WithUserName.
func UserNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(userNameKey).(string)
	return name, ok && name != ""
}
