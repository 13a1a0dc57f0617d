package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fcsolar/pos/internal/sale"
	"github.com/fcsolar/pos/internal/storage"
)

const storageKey = "sales"

// Store owns the persisted sales collection: loaded once at startup,
// rewritten in full on every mutation. The mutex makes the one-sale-per-order
// check-then-insert atomic against concurrent callers.
type Store struct {
	mu    sync.Mutex
	blob  storage.Store
	sales []*sale.Sale
}

func New(ctx context.Context, blob storage.Store) *Store {
	s := &Store{blob: blob}

	if err := blob.Load(ctx, storageKey, &s.sales); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("could not load sales, starting empty", "error", err)
		}

		s.sales = nil
	}

	return s
}

func clone(s *sale.Sale) *sale.Sale {
	c := *s
	c.Items = append([]sale.Item(nil), s.Items...)

	return &c
}

func (s *Store) Insert(ctx context.Context, newSale *sale.Sale) (*sale.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newSale.OrderID != "" {
		for _, existing := range s.sales {
			if existing.OrderID == newSale.OrderID {
				return clone(existing), nil
			}
		}
	}

	sales := append(s.sales, clone(newSale))
	if err := s.blob.Save(ctx, storageKey, sales); err != nil {
		return nil, fmt.Errorf("persisting sales: %w", err)
	}

	s.sales = sales

	return clone(newSale), nil
}

func (s *Store) Get(_ context.Context, id string) (*sale.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sales {
		if existing.ID == id {
			return clone(existing), nil
		}
	}

	return nil, sale.ErrNotFound
}

func (s *Store) List(_ context.Context) ([]*sale.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales := make([]*sale.Sale, len(s.sales))
	for i, existing := range s.sales {
		sales[i] = clone(existing)
	}

	return sales, nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blob.Save(ctx, storageKey, []*sale.Sale{}); err != nil {
		return fmt.Errorf("clearing sales: %w", err)
	}

	s.sales = nil

	return nil
}
