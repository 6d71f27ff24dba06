package auth

import "errors"

var (
	// ErrInvalidInput is returned when a required field is empty.
	ErrInvalidInput = errors.New("username and password required")

	// ErrUserNotFound is returned when the username is unknown.
	// Callers must not expose this distinctly from ErrWrongPassword;
	// it exists for internal logging only.
	ErrUserNotFound = errors.New("user not found")

	// ErrWrongPassword is returned when the password does not match.
	ErrWrongPassword = errors.New("wrong password")

	// ErrUnauthorized is returned when no valid session exists.
	ErrUnauthorized = errors.New("unauthorized")
)
