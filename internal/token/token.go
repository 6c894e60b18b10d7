// Package token issues and validates the signed verification tokens that
// prove control of an email/wallet pair.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails signature or expiry checks.
var ErrInvalidToken = errors.New("invalid verification token")

// Payload is the data carried by a verification token.
type Payload struct {
	Email  string
	Wallet string
}

// claims binds the verification payload to the registered JWT claims.
type claims struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	Wallet string `json:"wallet"`
}

// Service creates and validates verification tokens using a process-wide
// secret and expiry duration.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token Service.
func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Create produces a signed token for the given email/wallet pair,
// expiring after the configured duration. No side effects.
func (s *Service) Create(email, wallet string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email:  email,
		Wallet: wallet,
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify decodes and validates a token, returning its payload.
// Returns ErrInvalidToken for a bad signature, a malformed token, or an
// expired one.
func (s *Service) Verify(tokenString string) (*Payload, error) {
	c := &claims{}

	t, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !t.Valid {
		return nil, ErrInvalidToken
	}

	return &Payload{Email: c.Email, Wallet: c.Wallet}, nil
}
