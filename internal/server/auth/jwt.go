package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/gophbot/internal/common"
)

// Claims are the registered claims plus the username the token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	UserName string
}

func GenerateToken(userName string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserName: userName,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetUserNameFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserName == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserName, nil
}

// JWTPolicy issues HS256 tokens that name the user and expire after TTL.
// Verification needs only the secret.
type JWTPolicy struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTPolicy(secret string, ttl time.Duration) (*JWTPolicy, error) {
	if secret == "" {
		return nil, errors.New("jwt policy: empty secret key")
	}
	if ttl <= 0 {
		return nil, errors.New("jwt policy: token validity must be positive")
	}
	return &JWTPolicy{secret: []byte(secret), ttl: ttl}, nil
}

func (p *JWTPolicy) Name() string { return PolicyJWT }

func (p *JWTPolicy) Issue(username, _ string) (string, error) {
	return GenerateToken(username, p.secret, p.ttl)
}

func (p *JWTPolicy) Parse(token string) (*Principal, error) {
	name, err := GetUserNameFromToken(token, p.secret)
	if err != nil {
		return nil, err
	}
	return &Principal{UserName: name}, nil
}
