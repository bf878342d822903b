package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt hash from the plaintext password.
// The returned bytes are the only credential material ever stored.
func HashPassword(password string) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password cannot be blank", ErrNotValid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	return hash, nil
}

// ComparePassword checks the plaintext password against the stored hash
// in constant time.
//
// A mismatch returns ErrNotValid with no further detail;
// callers cannot distinguish a bad password from a missing user through it.
func ComparePassword(hash []byte, password string) error {
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("%w", ErrNotValid)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	return nil
}
