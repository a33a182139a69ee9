// Package services contains server-side business logic. This file implements
// UserService: the credential store operations (register, authenticate) and
// the token gate built on them (login, token validation, admin bootstrap).
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gophbot/internal/common"
	"github.com/dmitrijs2005/gophbot/internal/logging"
	"github.com/dmitrijs2005/gophbot/internal/server/auth"
	"github.com/dmitrijs2005/gophbot/internal/server/config"
	"github.com/dmitrijs2005/gophbot/internal/server/models"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/repomanager"
)

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

// dummyHash is compared against when the user does not exist, so a miss
// costs the same as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt password hash
// - Authenticate: verify a username/password pair
// - Login: authenticate and issue a bearer token under the active policy
// - ValidateToken / ValidateHeader: resolve a bearer token to a user name
type UserService struct {
	repomanager repomanager.RepositoryManager
	policy      auth.Policy
	bcryptCost  int
	logger      logging.Logger
}

// NewUserService builds the token policy named in cfg.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) (*UserService, error) {
	policy, err := auth.NewPolicy(cfg.TokenPolicy, cfg.SecretKey, cfg.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", cost)
	}
	return &UserService{
		repomanager: m,
		policy:      policy,
		bcryptCost:  cost,
		logger:      l.With("module", "users"),
	}, nil
}

// Policy returns the name of the active token policy.
func (s *UserService) Policy() string {
	return s.policy.Name()
}

// Register creates a new user. It fails with ErrorValidation for empty or
// unusable input and ErrorAlreadyExists for a taken username; the existing
// record is never touched.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", common.ErrorValidation)
	}
	if strings.Contains(username, ":") {
		return nil, fmt.Errorf("%w: username must not contain ':'", common.ErrorValidation)
	}
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password longer than %d bytes", common.ErrorValidation, maxPasswordBytes)
	}

	repo := s.repomanager.Repositories().Users
	if _, err := repo.GetUserByLogin(ctx, username); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, s.unavailable(ctx, "lookup user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	u, err := repo.Create(ctx, &models.User{UserName: username, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, s.unavailable(ctx, "create user", err)
	}

	s.logger.Info(ctx, "user registered", "username", username)
	return u, nil
}

// Authenticate checks password against the stored hash. Every failure is
// ErrorUnauthorized. bcrypt only looks at the first maxPasswordBytes, so a
// longer password is refused before any comparison.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if len(password) > maxPasswordBytes {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Repositories().Users.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, common.ErrorUnauthorized
		}
		return nil, s.unavailable(ctx, "lookup user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// Login verifies the credentials and, on success, returns a bearer token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password required", common.ErrorValidation)
	}

	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := s.policy.Issue(user.UserName, password)
	if err != nil {
		return "", fmt.Errorf("%w: issue token: %v", common.ErrorInternal, err)
	}
	return token, nil
}

// ValidateToken returns the user name a token was issued to. Every
// rejection is ErrorUnauthorized, whatever the cause.
func (s *UserService) ValidateToken(ctx context.Context, token string) (string, error) {
	p, err := s.policy.Parse(token)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "reason", err)
		return "", common.ErrorUnauthorized
	}

	if p.NeedsRecheck() {
		if _, err := s.Authenticate(ctx, p.UserName, p.Password); err != nil {
			return "", err
		}
	}
	return p.UserName, nil
}

// ValidateHeader is ValidateToken for a raw Authorization value.
func (s *UserService) ValidateHeader(ctx context.Context, header string) (string, error) {
	token, err := auth.ParseBearer(header)
	if err != nil {
		return "", common.ErrorUnauthorized
	}
	return s.ValidateToken(ctx, token)
}

// EnsureAdmin creates the administrative account unless it already
// exists. It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.repomanager.Repositories().Users.GetUserByLogin(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return false, s.unavailable(ctx, "lookup admin", err)
	}

	if _, err := s.Register(ctx, username, password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *UserService) unavailable(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, "storage failure", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %v", common.ErrorUnavailable, op, err)
}
