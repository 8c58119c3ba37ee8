package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrUnauthorized = errors.New("unauthorized")
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// AccountLookup reports whether an account of the given role exists for an
// identity. Implemented by the account repository.
type AccountLookup interface {
	ExistsWithRole(ctx context.Context, email string, role Role) (bool, error)
}

type Claims struct {
	jwt.RegisteredClaims
}

// Service issues and verifies signed identity tokens. Verification is
// stateless; Authorize additionally checks the claimed role against the
// account directory.
type Service struct {
	secret   []byte
	ttl      time.Duration
	accounts AccountLookup
}

func NewService(secret string, ttl time.Duration, accounts AccountLookup) *Service {
	return &Service{
		secret:   []byte(secret),
		ttl:      ttl,
		accounts: accounts,
	}
}

// Issue signs a token with the identity as subject and a fixed expiry.
func (s *Service) Issue(email string) (string, error) {
	now := time.Now()
	c := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
func (s *Service) Verify(raw string) (string, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || c.Subject == "" {
		return "", ErrInvalidToken
	}
	return c.Subject, nil
}

// Authorize verifies the token and requires an existing account of the
// requested role for its identity.
func (s *Service) Authorize(ctx context.Context, raw string, role Role) (string, error) {
	email, err := s.Verify(raw)
	if err != nil {
		return "", err
	}

	switch role {
	case RoleAdmin, RoleDoctor, RolePatient:
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrUnauthorized, role)
	}

	ok, err := s.accounts.ExistsWithRole(ctx, email, role)
	if err != nil {
		return "", fmt.Errorf("account lookup: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: no %s account for token identity", ErrUnauthorized, role)
	}
	return email, nil
}
