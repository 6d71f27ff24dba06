// Package credentials provides password hashing and verification.
package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash hashes a plaintext password using bcrypt. The salt and cost
// parameters are embedded in the returned digest.
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(bytes), nil
}

// Verify compares a plaintext password with a stored digest.
// Returns (false, nil) on mismatch. A non-nil error means the digest
// itself is malformed, never that the password was wrong. bcrypt
// compares in constant time.
func Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("verify password: %w", err)
}
