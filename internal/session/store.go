// Package session holds server-side sessions keyed by an opaque id the
// client carries in a cookie.
package session

import (
	"context"
	"time"
)

// Session represents an authenticated user session. Lifetime is fixed
// at creation; nothing extends it afterwards.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store defines how sessions are stored and retrieved. Implementations
// must support concurrent access; Create is a single atomic write.
type Store interface {
	// Create generates a fresh session id and persists the session
	// with the given TTL.
	Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error)

	// Get returns (nil, nil) when the session is missing or expired.
	// A session past its expiry is treated as nonexistent regardless
	// of what the backing store still holds.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Delete removes a session. Deleting an absent session is not an
	// error.
	Delete(ctx context.Context, sessionID string) error
}
