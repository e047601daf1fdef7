// ABOUTME: Tenant-scoped indexed collection over the kv record store
// ABOUTME: Maintains one canonical record per id plus a denormalized index list per type

package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harborview/orgadmin/internal/kv"
)

// Base carries the fields every business record shares. Entity types embed
// it anonymously, which flattens these fields into their JSON encoding and
// promotes the Meta accessor that satisfies Record.
type Base struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"orgId"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta returns the shared record fields. Embedding Base promotes this
// method, so entity types implement Record without boilerplate.
func (b *Base) Meta() *Base { return b }

// Record is implemented by every entity type stored in a Collection.
type Record interface {
	Meta() *Base
}

// Definition describes one entity type to its Collection.
type Definition[T Record] struct {
	// Type names the key namespace: "{Type}:{id}" and "{Type}:index".
	Type string

	// New allocates an empty record for decoding.
	New func() T

	// Validate checks required fields on create. Wrap ErrValidation.
	Validate func(T) error

	// Code returns the tenant-scoped unique business code, or "" when the
	// type has no uniqueness constraint.
	Code func(T) string

	// Name returns the display name used for substring filtering, or "".
	Name func(T) string

	// Machine is the status lifecycle, nil for types without one.
	Machine *Machine
}

// Filter narrows and pages List results.
type Filter struct {
	Status string // exact status match when non-empty
	Query  string // case-insensitive substring match on the record name
	Limit  int    // 0 means no limit
	Offset int
}

// Collection stores records of one entity type: a canonical copy per id and
// one denormalized index list answering every list/filter query in a single
// read.
//
// The canonical write and the index rewrite are two separate Set calls with
// no transaction between them. A per-collection mutex serializes the
// read-modify-write within this process; concurrent mutations from other
// processes against the same backend can still lose index updates. See
// DESIGN.md for the reasoning.
type Collection[T Record] struct {
	def    Definition[T]
	store  kv.Store
	mu     sync.Mutex
	logger *slog.Logger
}

// New creates a Collection for the entity type described by def.
func New[T Record](store kv.Store, def Definition[T]) *Collection[T] {
	return &Collection[T]{
		def:    def,
		store:  store,
		logger: slog.Default().With("component", "collection", "type", def.Type),
	}
}

func (c *Collection[T]) recordKey(id string) string {
	return c.def.Type + ":" + id
}

func (c *Collection[T]) indexKey() string {
	return c.def.Type + ":index"
}

// normalizeCode folds case and surrounding space so "LC-01" and " lc-01 "
// collide within a tenant.
func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Create validates rec, enforces the tenant-scoped uniqueness constraint,
// writes the canonical record and appends it to the index. Missing id,
// status and timestamps are stamped here.
func (c *Collection[T]) Create(ctx context.Context, rec T) error {
	meta := rec.Meta()
	if meta.OrgID == "" {
		return fmt.Errorf("%w: organization is required", ErrValidation)
	}
	if c.def.Validate != nil {
		if err := c.def.Validate(rec); err != nil {
			return err
		}
	}

	if meta.ID == "" {
		meta.ID = uuid.New().String()
	}
	if c.def.Machine != nil {
		// Records enter at the machine's initial state; a caller-supplied
		// status would bypass the transition checks in UpdateStatus.
		if meta.Status != "" && meta.Status != c.def.Machine.Initial {
			return fmt.Errorf("%w: new %s records start as %q", ErrValidation, c.def.Type, c.def.Machine.Initial)
		}
		meta.Status = c.def.Machine.Initial
	}
	now := time.Now().UTC()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	c.mu.Lock()
	defer c.mu.Unlock()

	index, err := c.readIndex(ctx)
	if err != nil {
		return err
	}

	if c.def.Code != nil {
		if code := normalizeCode(c.def.Code(rec)); code != "" {
			for _, existing := range index {
				if existing.Meta().OrgID == meta.OrgID && normalizeCode(c.def.Code(existing)) == code {
					return fmt.Errorf("%w: %s code %q already exists", ErrConflict, c.def.Type, c.def.Code(rec))
				}
			}
		}
	}

	if err := c.writeRecord(ctx, rec); err != nil {
		return err
	}

	index = append(index, rec)
	if err := c.writeIndex(ctx, index); err != nil {
		return err
	}

	c.logger.Debug("record created", "id", meta.ID, "org_id", meta.OrgID)
	return nil
}

// Get returns the canonical record for id, scoped to orgID. A record owned
// by another tenant reads as ErrNotFound so existence never leaks across
// organizations.
func (c *Collection[T]) Get(ctx context.Context, orgID, id string) (T, error) {
	var zero T

	raw, err := c.store.Get(ctx, c.recordKey(id))
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("reading record: %w", err)
	}

	rec := c.def.New()
	if err := json.Unmarshal(raw, rec); err != nil {
		return zero, fmt.Errorf("decoding record %s: %w", c.recordKey(id), err)
	}

	if rec.Meta().OrgID != orgID {
		return zero, ErrNotFound
	}
	return rec, nil
}

// Update applies a general field mutation under the tenant guard. Identity
// fields (id, organization, creation time) survive whatever apply does.
func (c *Collection[T]) Update(ctx context.Context, orgID, id string, apply func(T) error) (T, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.getForMutation(ctx, orgID, id)
	if err != nil {
		return zero, err
	}

	pinned := *rec.Meta()
	if err := apply(rec); err != nil {
		return zero, err
	}

	meta := rec.Meta()
	meta.ID = pinned.ID
	meta.OrgID = pinned.OrgID
	meta.Status = pinned.Status
	meta.CreatedAt = pinned.CreatedAt
	meta.UpdatedAt = time.Now().UTC()

	if err := c.writeBoth(ctx, rec); err != nil {
		return zero, err
	}
	return rec, nil
}

// UpdateStatus transitions the record to newStatus after checking the
// type's state machine, then applies extra field changes. Transitions out
// of a terminal status always fail with ErrInvalidTransition.
func (c *Collection[T]) UpdateStatus(ctx context.Context, orgID, id, newStatus string, apply func(T) error) (T, error) {
	var zero T

	if c.def.Machine == nil {
		return zero, fmt.Errorf("%s has no status lifecycle", c.def.Type)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.getForMutation(ctx, orgID, id)
	if err != nil {
		return zero, err
	}

	meta := rec.Meta()
	if !c.def.Machine.Known(newStatus) {
		return zero, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}
	if !c.def.Machine.Can(meta.Status, newStatus) {
		return zero, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, meta.Status, newStatus)
	}

	pinned := *meta
	if apply != nil {
		if err := apply(rec); err != nil {
			return zero, err
		}
	}

	meta = rec.Meta()
	meta.ID = pinned.ID
	meta.OrgID = pinned.OrgID
	meta.CreatedAt = pinned.CreatedAt
	meta.Status = newStatus
	meta.UpdatedAt = time.Now().UTC()

	if err := c.writeBoth(ctx, rec); err != nil {
		return zero, err
	}

	c.logger.Debug("status changed", "id", meta.ID, "from", pinned.Status, "to", newStatus)
	return rec, nil
}

// List reads the index once, drops other tenants' entries, applies the
// filter and returns records sorted by creation time, newest first.
func (c *Collection[T]) List(ctx context.Context, orgID string, f Filter) ([]T, error) {
	index, err := c.readIndex(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	matches := make([]T, 0, len(index))
	for _, rec := range index {
		meta := rec.Meta()
		if meta.OrgID != orgID {
			continue
		}
		if f.Status != "" && meta.Status != f.Status {
			continue
		}
		if query != "" {
			name := ""
			if c.def.Name != nil {
				name = c.def.Name(rec)
			}
			if !strings.Contains(strings.ToLower(name), query) {
				continue
			}
		}
		matches = append(matches, rec)
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Meta().CreatedAt.After(matches[b].Meta().CreatedAt)
	})

	if f.Offset > 0 {
		if f.Offset >= len(matches) {
			return []T{}, nil
		}
		matches = matches[f.Offset:]
	}
	if f.Limit > 0 && len(matches) > f.Limit {
		matches = matches[:f.Limit]
	}
	return matches, nil
}

// getForMutation reads the canonical record and applies the mutation-path
// tenant rule: absent is ErrNotFound, another tenant's record is
// ErrForbidden. Callers must hold c.mu.
func (c *Collection[T]) getForMutation(ctx context.Context, orgID, id string) (T, error) {
	var zero T

	raw, err := c.store.Get(ctx, c.recordKey(id))
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("reading record: %w", err)
	}

	rec := c.def.New()
	if err := json.Unmarshal(raw, rec); err != nil {
		return zero, fmt.Errorf("decoding record %s: %w", c.recordKey(id), err)
	}

	if rec.Meta().OrgID != orgID {
		return zero, ErrForbidden
	}
	return rec, nil
}

// writeBoth rewrites the canonical record and replaces its index entry.
// Callers must hold c.mu.
func (c *Collection[T]) writeBoth(ctx context.Context, rec T) error {
	if err := c.writeRecord(ctx, rec); err != nil {
		return err
	}

	index, err := c.readIndex(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range index {
		if existing.Meta().ID == rec.Meta().ID {
			index[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		// Canonical record existed but its index entry is gone; heal it.
		c.logger.Warn("index entry missing, re-appending", "id", rec.Meta().ID)
		index = append(index, rec)
	}

	return c.writeIndex(ctx, index)
}

func (c *Collection[T]) writeRecord(ctx context.Context, rec T) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if err := c.store.Set(ctx, c.recordKey(rec.Meta().ID), raw); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

func (c *Collection[T]) readIndex(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.indexKey())
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading index: %w", err)
	}

	var index []T
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("decoding index %s: %w", c.indexKey(), err)
	}
	return index, nil
}

func (c *Collection[T]) writeIndex(ctx context.Context, index []T) error {
	raw, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := c.store.Set(ctx, c.indexKey(), raw); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}
