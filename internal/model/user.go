// Package model defines domain entities for the application.
package model

import (
	"strconv"
	"time"
)

// User represents a registered tipping participant.
// Email and wallet are each unique across all users; uniqueness is
// enforced by the database, not by application-level checks.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Wallet     string    `json:"wallet"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CachedUser represents user data stored in Redis cache.
// Uses string types for Redis hash compatibility.
type CachedUser struct {
	Email      string `redis:"email"`
	Wallet     string `redis:"wallet"`
	IsVerified string `redis:"is_verified"` // "1" or "0"
	UpdatedAt  string `redis:"updated_at"`  // Unix timestamp
}

// ToCachedUser converts a User to its cache representation.
func (u *User) ToCachedUser() *CachedUser {
	verified := "0"
	if u.IsVerified {
		verified = "1"
	}
	return &CachedUser{
		Email:      u.Email,
		Wallet:     u.Wallet,
		IsVerified: verified,
		UpdatedAt:  strconv.FormatInt(u.UpdatedAt.Unix(), 10),
	}
}

// Verified reports whether the cached entry marks the user as verified.
func (c *CachedUser) Verified() bool {
	return c.IsVerified == "1"
}
