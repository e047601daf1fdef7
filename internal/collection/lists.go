// ABOUTME: Auxiliary per-user/per-org id lists stored as JSON arrays
// ABOUTME: Backs keys like "user_expenditures:{userId}"

package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harborview/orgadmin/internal/kv"
)

// AppendID adds id to the JSON string list stored at key, creating the list
// if absent. Duplicates are skipped.
func AppendID(ctx context.Context, store kv.Store, key, id string) error {
	ids, err := ListIDs(ctx, store, key)
	if err != nil {
		return err
	}

	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	ids = append(ids, id)

	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding id list: %w", err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("writing id list: %w", err)
	}
	return nil
}

// ListIDs returns the JSON string list stored at key, empty when absent.
func ListIDs(ctx context.Context, store kv.Store, key string) ([]string, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading id list: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decoding id list %s: %w", key, err)
	}
	return ids, nil
}
