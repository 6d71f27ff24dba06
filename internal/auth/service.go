// Package auth orchestrates registration, login, logout and profile
// retrieval over the user and session stores.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/VanVu13/simpleauth/internal/auth/credentials"
	"github.com/VanVu13/simpleauth/internal/observability"
	"github.com/VanVu13/simpleauth/internal/session"
	"github.com/VanVu13/simpleauth/internal/user"
)

// Service is the auth controller. All dependencies are injected; it
// holds no mutable state of its own, so it is safe for concurrent use.
type Service struct {
	users    user.Store
	sessions session.Store
	ttl      time.Duration
}

// NewService creates the auth controller with a fixed session TTL.
func NewService(users user.Store, sessions session.Store, ttl time.Duration) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
	}
}

// Register creates a new user. No session is issued; the user logs in
// separately. Returns user.ErrDuplicateUsername when the name is taken.
func (s *Service) Register(ctx context.Context, username, password string) (*user.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	// Lookup-then-insert leaves a narrow race window; the store's
	// unique constraint is the authoritative guard and turns a
	// concurrent duplicate insert into ErrDuplicateUsername.
	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		observability.RegistrationsTotal.WithLabelValues("conflict").Inc()
		return nil, user.ErrDuplicateUsername
	}
	if !errors.Is(err, user.ErrNotFound) {
		observability.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	digest, err := credentials.Hash(password)
	if err != nil {
		observability.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	u, err := s.users.Create(ctx, username, digest)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) {
			observability.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return nil, err
		}
		observability.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	observability.RegistrationsTotal.WithLabelValues("created").Inc()
	slog.InfoContext(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies credentials and issues a new session with a fresh TTL.
// This is the only path that creates a session.
func (s *Service) Login(ctx context.Context, username, password string) (*session.Session, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			observability.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			slog.DebugContext(ctx, "login failed", "reason", "unknown username")
			return nil, ErrUserNotFound
		}
		observability.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	ok, err := credentials.Verify(password, u.PasswordHash)
	if err != nil {
		observability.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		observability.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		slog.DebugContext(ctx, "login failed", "reason", "wrong password", "user_id", u.ID)
		return nil, ErrWrongPassword
	}

	sess, err := s.sessions.Create(ctx, u.ID, s.ttl)
	if err != nil {
		observability.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	observability.LoginsTotal.WithLabelValues("issued").Inc()
	observability.SessionsIssuedTotal.Inc()
	slog.InfoContext(ctx, "session issued", "user_id", u.ID)
	return sess, nil
}

// Logout destroys the session. Returns ErrUnauthorized when the
// session is already gone or expired.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if sess == nil {
		return ErrUnauthorized
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	slog.InfoContext(ctx, "session destroyed", "user_id", sess.UserID)
	return nil
}

// Profile returns the identity for a valid session. The password hash
// never appears in the serialized user.
func (s *Service) Profile(ctx context.Context, sessionID string) (*user.User, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	if sess == nil {
		return nil, ErrUnauthorized
	}

	u, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Session points at a user that no longer exists; treat
			// the session as invalid.
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("profile: %w", err)
	}

	return u, nil
}
