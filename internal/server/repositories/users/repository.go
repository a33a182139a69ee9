// Package users stores credentials: one row per username holding the
// bcrypt hash of the password.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophbot/internal/server/models"
)

// Repository is the credential store. Create fails with
// common.ErrorAlreadyExists for a taken username; GetUserByLogin fails with
// common.ErrorNotFound for an unknown one.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
