package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fcsolar/pos/internal/activity"
	"github.com/fcsolar/pos/internal/storage"
)

const storageKey = "activities"

// Store owns the persisted activity collection. It is the sole writer to
// the "activities" key: loaded once at startup, rewritten on every append.
type Store struct {
	mu      sync.Mutex
	blob    storage.Store
	records []*activity.Record
}

func New(ctx context.Context, blob storage.Store) *Store {
	s := &Store{blob: blob}

	if err := blob.Load(ctx, storageKey, &s.records); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("could not load activity log, starting empty", "error", err)
		}

		s.records = nil
	}

	return s
}

func (s *Store) Append(ctx context.Context, rec *activity.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := append(s.records, rec)
	if err := s.blob.Save(ctx, storageKey, records); err != nil {
		return fmt.Errorf("persisting activities: %w", err)
	}

	s.records = records

	return nil
}

func (s *Store) List(_ context.Context) ([]*activity.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]*activity.Record, len(s.records))
	for i, rec := range s.records {
		c := *rec
		records[i] = &c
	}

	return records, nil
}
