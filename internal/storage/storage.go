package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a collection key has never been saved.
var ErrNotFound = errors.New("collection not found")

// Store persists whole collections as keyed JSON blobs. Each ledger owns
// exactly one key and rewrites it in full on every mutation.
type Store interface {
	Load(ctx context.Context, key string, v any) error
	Save(ctx context.Context, key string, v any) error
}
