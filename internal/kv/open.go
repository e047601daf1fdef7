// ABOUTME: Backend selection for the record store
// ABOUTME: Maps a backend name plus path/DSN onto a concrete Store adapter

package kv

import (
	"context"
	"fmt"
)

// Options identifies the backend to open. Backend is one of
// memory, file, bolt, sqlite, postgres or mongo. Path applies to the
// file-based backends, DSN and Database to the networked ones.
type Options struct {
	Backend  string
	Path     string
	DSN      string
	Database string
}

// Open constructs the Store adapter named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(opts.Path)
	case "bolt":
		return NewBoltStore(opts.Path)
	case "sqlite":
		return NewSQLiteStore(opts.Path)
	case "postgres":
		return NewPostgresStore(ctx, opts.DSN)
	case "mongo":
		db := opts.Database
		if db == "" {
			db = "orgadmin"
		}
		return NewMongoStore(ctx, opts.DSN, db)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
