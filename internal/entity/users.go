// ABOUTME: User profile and credential store keyed by "user:{email}"
// ABOUTME: Users are never deleted; deactivation flips IsActive

package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harborview/orgadmin/internal/auth"
	"github.com/harborview/orgadmin/internal/collection"
	"github.com/harborview/orgadmin/internal/kv"
)

// User is a login account: profile plus credential. The plaintext password
// is never stored, only its bcrypt hash.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	OrgID        string    `json:"orgId"`
	Role         auth.Role `json:"role"`
	PasswordHash string    `json:"passwordHash"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Users stores user records in the kv store, canonical key "user:{email}".
type Users struct {
	store kv.Store
}

// NewUsers creates a user store over store.
func NewUsers(store kv.Store) *Users {
	return &Users{store: store}
}

func userKey(email string) string {
	return "user:" + NormalizeEmail(email)
}

// NormalizeEmail folds case and trims space so lookups and uniqueness agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores a new user. An existing record for the same email is
// ErrConflict.
func (u *Users) Create(ctx context.Context, user *User) error {
	if NormalizeEmail(user.Email) == "" {
		return fmt.Errorf("%w: email is required", collection.ErrValidation)
	}
	if user.PasswordHash == "" {
		return fmt.Errorf("%w: password hash is required", collection.ErrValidation)
	}

	if _, err := u.store.Get(ctx, userKey(user.Email)); err == nil {
		return fmt.Errorf("%w: user %s already exists", collection.ErrConflict, NormalizeEmail(user.Email))
	} else if !errors.Is(err, kv.ErrKeyNotFound) {
		return fmt.Errorf("checking existing user: %w", err)
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Email = NormalizeEmail(user.Email)
	user.IsActive = true
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	return u.write(ctx, user)
}

// GetByEmail returns the user stored for email, or collection.ErrNotFound.
func (u *Users) GetByEmail(ctx context.Context, email string) (*User, error) {
	raw, err := u.store.Get(ctx, userKey(email))
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, collection.ErrNotFound
		}
		return nil, fmt.Errorf("reading user: %w", err)
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", userKey(email), err)
	}
	return &user, nil
}

// SetPassword replaces the stored credential hash.
func (u *Users) SetPassword(ctx context.Context, email, passwordHash string) error {
	user, err := u.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	return u.write(ctx, user)
}

// Deactivate flips IsActive off. The record stays; credentials are never
// physically deleted.
func (u *Users) Deactivate(ctx context.Context, email string) error {
	user, err := u.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	user.IsActive = false
	user.UpdatedAt = time.Now().UTC()
	return u.write(ctx, user)
}

func (u *Users) write(ctx context.Context, user *User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := u.store.Set(ctx, userKey(user.Email), raw); err != nil {
		return fmt.Errorf("writing user: %w", err)
	}
	return nil
}
