// Package store defines the durable key/value collaborator that feature
// state is persisted through. Documents are JSON, scoped per username.
package store

import (
	"context"
	"encoding/json"
)

// Store is the durable document store contract. Load returns (nil, nil)
// when the key has never been written; callers fall back to their own
// defaults rather than treating absence as an error.
type Store interface {
	Load(ctx context.Context, username, key string) (json.RawMessage, error)
	Persist(ctx context.Context, username, key string, value json.RawMessage) error
	Remove(ctx context.Context, username, key string) error
}
