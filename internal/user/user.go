// Package user defines the user identity record and its persistence
// contract. The password hash never leaves this package's callers in a
// serialized form.
package user

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateUsername is returned when a username is already taken.
	// The database unique constraint is the authoritative guard; a
	// concurrent duplicate insert surfaces as this error, never as
	// corrupted state.
	ErrDuplicateUsername = errors.New("username already taken")
)

// User is an identity record. The password hash is excluded from JSON
// so it can never leak through a response body.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store persists users. Usernames are unique and case-sensitive.
type Store interface {
	// FindByUsername returns ErrNotFound when no user has the username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByID returns ErrNotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*User, error)

	// Create inserts a new user with a store-assigned id.
	// Returns ErrDuplicateUsername if the username is taken.
	Create(ctx context.Context, username, passwordHash string) (*User, error)
}
