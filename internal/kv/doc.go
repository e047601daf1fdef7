// ABOUTME: Package documentation for the kv storage backends
// ABOUTME: Explains adapter selection and which backends are durable

// Package kv provides the keyed record store that backs all orgadmin
// persistence, with interchangeable adapters behind a single Store
// interface.
//
// Six adapters exist:
//
//   - memory: process-local map, not durable, for tests and development
//   - file: whole-file JSON blob, single process only
//   - bolt: embedded bbolt database, durable, single process
//   - sqlite: embedded SQLite database, durable, single process
//   - postgres: single-table PostgreSQL store, durable, multi-instance safe
//   - mongo: single-collection MongoDB store, durable, multi-instance safe
//
// All adapters are behaviorally identical at the Store contract: Get on an
// absent key returns ErrKeyNotFound, Set overwrites, Delete on an absent
// key succeeds. Production deployments should use postgres or mongo; the
// rest exist for development and tests.
package kv
