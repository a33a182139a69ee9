// Package auth turns verified credentials into bearer tokens and back.
//
// Exactly one Policy is active per deployment:
//
//   - credential: the token is base64("username:password"). Nothing is
//     stored; every request re-checks the pair against the credential
//     store, so tokens die when the password changes. The token is as
//     sensitive as the password and must only travel over TLS.
//   - static: every login receives the same shared secret. The token is
//     bound to no user and never expires.
//   - jwt: an HS256 token naming the user, valid for a fixed duration.
package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophbot/internal/common"
)

const (
	PolicyCredential = "credential"
	PolicyStatic     = "static"
	PolicyJWT        = "jwt"
)

// SharedPrincipal is the user name reported for static tokens.
const SharedPrincipal = "shared"

// Principal is what a token says about its bearer. When Password is set
// the caller must re-authenticate the pair before trusting UserName.
type Principal struct {
	UserName string
	Password string
}

// NeedsRecheck reports whether the principal carries credentials that
// still have to be verified.
func (p *Principal) NeedsRecheck() bool {
	return p.Password != ""
}

// Policy issues tokens for authenticated users and parses presented ones.
// Parse failures are always common.ErrInvalidToken or common.ErrTokenExpired.
type Policy interface {
	Name() string
	Issue(username, password string) (string, error)
	Parse(token string) (*Principal, error)
}

// NewPolicy builds the policy called name.
func NewPolicy(name, secret string, ttl time.Duration) (Policy, error) {
	switch name {
	case PolicyCredential, "":
		return CredentialPolicy{}, nil
	case PolicyStatic:
		return NewStaticPolicy(secret)
	case PolicyJWT:
		return NewJWTPolicy(secret, ttl)
	default:
		return nil, fmt.Errorf("unknown token policy %q", name)
	}
}

// CredentialPolicy encodes the credential pair itself.
type CredentialPolicy struct{}

var tokenEncoding = base64.StdEncoding.Strict()

func (CredentialPolicy) Name() string { return PolicyCredential }

func (CredentialPolicy) Issue(username, password string) (string, error) {
	return tokenEncoding.EncodeToString([]byte(username + ":" + password)), nil
}

func (CredentialPolicy) Parse(token string) (*Principal, error) {
	raw, err := tokenEncoding.DecodeString(token)
	if err != nil || !utf8.Valid(raw) {
		return nil, common.ErrInvalidToken
	}
	user, pass, ok := strings.Cut(string(raw), ":")
	if !ok || user == "" || pass == "" {
		return nil, common.ErrInvalidToken
	}
	return &Principal{UserName: user, Password: pass}, nil
}

// StaticPolicy hands out one shared secret.
type StaticPolicy struct {
	secret []byte
}

func NewStaticPolicy(secret string) (*StaticPolicy, error) {
	if secret == "" {
		return nil, errors.New("static policy: empty secret key")
	}
	return &StaticPolicy{secret: []byte(secret)}, nil
}

func (p *StaticPolicy) Name() string { return PolicyStatic }

func (p *StaticPolicy) Issue(string, string) (string, error) {
	return string(p.secret), nil
}

func (p *StaticPolicy) Parse(token string) (*Principal, error) {
	if subtle.ConstantTimeCompare([]byte(token), p.secret) != 1 {
		return nil, common.ErrInvalidToken
	}
	return &Principal{UserName: SharedPrincipal}, nil
}
