// ABOUTME: Tests for the user profile and credential store
// ABOUTME: Duplicate email conflict, email normalization, password change, deactivation

package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/orgadmin/internal/auth"
	"github.com/harborview/orgadmin/internal/collection"
	"github.com/harborview/orgadmin/internal/kv"
)

func testUser() *User {
	return &User{
		Email:        "Ada@Example.com",
		Name:         "Ada",
		OrgID:        "t1",
		Role:         auth.RoleOwner,
		PasswordHash: "$2a$12$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
	}
}

func TestUsers_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(kv.NewMemoryStore())

	u := testUser()
	require.NoError(t, users.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.True(t, u.IsActive)
	assert.Equal(t, "ada@example.com", u.Email, "email should be normalized on create")

	// Lookup is case-insensitive
	got, err := users.GetByEmail(ctx, "ADA@example.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "t1", got.OrgID)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(kv.NewMemoryStore())

	require.NoError(t, users.Create(ctx, testUser()))

	again := testUser()
	again.Email = "  ada@EXAMPLE.com "
	err := users.Create(ctx, again)
	assert.ErrorIs(t, err, collection.ErrConflict)
}

func TestUsers_UnknownEmail(t *testing.T) {
	users := NewUsers(kv.NewMemoryStore())

	_, err := users.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, collection.ErrNotFound)
}

func TestUsers_SetPassword(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(kv.NewMemoryStore())
	require.NoError(t, users.Create(ctx, testUser()))

	require.NoError(t, users.SetPassword(ctx, "ada@example.com", "$2a$12$newhashnewhashnewhashnewhashnewhashnewhashnewhashnewha"))

	got, err := users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, got.PasswordHash, "newhash")
}

func TestUsers_DeactivateKeepsRecord(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(kv.NewMemoryStore())
	require.NoError(t, users.Create(ctx, testUser()))

	require.NoError(t, users.Deactivate(ctx, "ada@example.com"))

	got, err := users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err, "deactivated users are not deleted")
	assert.False(t, got.IsActive)
	assert.NotEmpty(t, got.PasswordHash, "credential survives deactivation")
}

func TestUsers_CreateValidation(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(kv.NewMemoryStore())

	u := testUser()
	u.Email = "   "
	assert.ErrorIs(t, users.Create(ctx, u), collection.ErrValidation)

	u = testUser()
	u.PasswordHash = ""
	assert.ErrorIs(t, users.Create(ctx, u), collection.ErrValidation)
}
