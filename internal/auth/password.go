package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// bcryptCost is the cost factor for bcrypt hashing. Higher values
	// are more secure but slower.
	bcryptCost = 12

	// MinPasswordLength is the minimum required password length.
	MinPasswordLength = 8
)

// ErrPasswordTooShort is returned when a password fails the length check.
var ErrPasswordTooShort = errors.New("password too short")

// BcryptHasher hashes credentials with bcrypt. It satisfies
// port.PasswordHasher.
type BcryptHasher struct{}

// Hash generates a bcrypt hash from a plain text password.
func (BcryptHasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Compare reports whether the plain text password matches the hash.
func (BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
