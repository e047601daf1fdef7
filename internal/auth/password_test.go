// ABOUTME: Unit tests for bcrypt password hashing and verification
// ABOUTME: Match, mismatch, salt uniqueness and corrupt hash handling

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword_VerifiesOwnOutput(t *testing.T) {
	hash, err := HashPassword("s3cret-passphrase")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if err := CheckPassword("s3cret-passphrase", hash); err != nil {
		t.Errorf("CheckPassword() error = %v, want nil", err)
	}
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if err := CheckPassword("battery staple", hash); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("CheckPassword() error = %v, want ErrWrongPassword", err)
	}
}

func TestHashPassword_SaltedOutput(t *testing.T) {
	h1, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	h2, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salt is not applied")
	}
	if !strings.HasPrefix(h1, "$2a$12$") {
		t.Errorf("hash %q does not carry cost 12", h1)
	}
}

func TestCheckPassword_CorruptHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not bcrypt", "plaintext-leaked-into-storage"},
		{"truncated", "$2a$12$tooshort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPassword("anything", tt.hash)
			if !errors.Is(err, ErrCorruptCredential) {
				t.Errorf("CheckPassword() error = %v, want ErrCorruptCredential", err)
			}
		})
	}
}
