// ABOUTME: Store interface and errors for the keyed record store
// ABOUTME: All persistence in orgadmin goes through this get/set/delete contract

package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has no value.
var ErrKeyNotFound = errors.New("key not found")

// Store is the uniform contract implemented by every storage backend.
// Set is an upsert; Delete is idempotent. Values are opaque byte slices,
// in practice JSON produced by the collection layer.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store
	Close() error
}
