package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fcsolar/pos/internal/order"
	"github.com/fcsolar/pos/internal/storage"
)

const storageKey = "orders"

// Store owns the persisted orders collection: loaded once at startup,
// rewritten in full on every mutation.
type Store struct {
	mu     sync.Mutex
	blob   storage.Store
	orders []*order.Order
}

func New(ctx context.Context, blob storage.Store) *Store {
	s := &Store{blob: blob}

	if err := blob.Load(ctx, storageKey, &s.orders); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("could not load orders, starting empty", "error", err)
		}

		s.orders = nil
	}

	return s
}

func clone(o *order.Order) *order.Order {
	c := *o
	c.Items = append([]order.Item(nil), o.Items...)

	if o.CompletedDate != nil {
		d := *o.CompletedDate
		c.CompletedDate = &d
	}

	return &c
}

func (s *Store) persist(ctx context.Context, orders []*order.Order) error {
	if err := s.blob.Save(ctx, storageKey, orders); err != nil {
		return fmt.Errorf("persisting orders: %w", err)
	}

	s.orders = orders

	return nil
}

func (s *Store) Insert(ctx context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx, append(s.orders, clone(o)))
}

func (s *Store) Get(_ context.Context, id string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == id {
			return clone(o), nil
		}
	}

	return nil, order.ErrNotFound
}

// Replace swaps the stored entry with the same id for the given order.
func (s *Store) Replace(ctx context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]*order.Order, len(s.orders))
	found := false

	for i, existing := range s.orders {
		if existing.ID == o.ID {
			orders[i] = clone(o)
			found = true

			continue
		}

		orders[i] = existing
	}

	if !found {
		return order.ErrNotFound
	}

	return s.persist(ctx, orders)
}

func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]*order.Order, 0, len(s.orders))
	found := false

	for _, existing := range s.orders {
		if existing.ID == id {
			found = true
			continue
		}

		orders = append(orders, existing)
	}

	if !found {
		return order.ErrNotFound
	}

	return s.persist(ctx, orders)
}

func (s *Store) List(_ context.Context) ([]*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]*order.Order, len(s.orders))
	for i, o := range s.orders {
		orders[i] = clone(o)
	}

	return orders, nil
}
