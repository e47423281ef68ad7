// Package crypto covers the credential primitives: bcrypt password
// hashing and the one-time password-reset tokens. Only the SHA-256
// hash of a reset token is ever persisted; the raw value travels once
// through the reset email.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = bcrypt.DefaultCost

	// resetTokenBytes is the entropy of a reset token (256 bits).
	resetTokenBytes = 32
)

// ErrMalformedHash reports a stored password hash that bcrypt cannot
// parse. It is distinct from a plain mismatch so callers can surface
// it as an internal failure instead of a silent "wrong password".
var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword hashes the provided password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword compares the hashed password with the provided
// password. A mismatch returns (false, nil); a hash bcrypt cannot
// parse returns ErrMalformedHash.
func ComparePassword(hashedPassword, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, ErrMalformedHash
}

// GenerateResetToken returns a new random reset token as a hex string.
func GenerateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashResetToken returns the SHA-256 hex digest of a raw reset token.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
