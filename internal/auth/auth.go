// Package auth issues and validates the bearer tokens used by the API.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Claims carry the cashier identity inside the signed token.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

type Service struct {
	secret []byte
	pin    string
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret, pin string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		pin:    pin,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Login checks the till PIN and returns a signed token for the cashier.
func (s *Service) Login(username, pin string) (string, error) {
	if username == "" {
		return "", ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(pin), []byte(s.pin)) != 1 {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Validate parses a token string and returns its claims.
func (s *Service) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", errors.Join(ErrInvalidToken, err))
	}

	if !token.Valid || claims.Username == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

type contextKey struct{}

// WithUser stores the authenticated username on the context.
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, contextKey{}, username)
}

// UserFrom returns the authenticated username, if any.
func UserFrom(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(contextKey{}).(string)

	return username, ok
}
