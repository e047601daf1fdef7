// ABOUTME: Password hashing and verification using bcrypt
// ABOUTME: Cost 12; corrupt stored hashes are distinguished from wrong passwords

package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is deliberately above bcrypt.DefaultCost; password checks are
// rare enough that the extra work factor is affordable.
const bcryptCost = 12

// Password errors
var (
	ErrWrongPassword     = errors.New("wrong password")
	ErrCorruptCredential = errors.New("corrupt stored credential")
)

// dummyHash is compared against when no real hash exists, so login timing
// does not reveal whether an account exists.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// HashPassword returns a salted bcrypt hash of the plaintext password.
// The salt is embedded in the output, so hashing the same password twice
// yields different strings.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies password against the stored hash. It returns nil on
// a match, ErrWrongPassword on a mismatch, and ErrCorruptCredential when the
// stored hash is not a valid bcrypt string.
func CheckPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrWrongPassword
	}
	return fmt.Errorf("%w: %v", ErrCorruptCredential, err)
}

// DummyCompare burns the same work as a real password check. Call it on the
// unknown-account path to keep login timing constant.
func DummyCompare(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
