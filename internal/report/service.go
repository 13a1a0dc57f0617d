package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fcsolar/pos/internal/activity"
	"github.com/fcsolar/pos/internal/order"
	"github.com/fcsolar/pos/internal/sale"
)

// Report is the read-side view over the three ledgers for one user and an
// optional date range. The reporting layer only reads; it never owns or
// mutates ledger state.
type Report struct {
	User       string             `json:"user"`
	From       *time.Time         `json:"from,omitempty"`
	To         *time.Time         `json:"to,omitempty"`
	Orders     []*order.Order     `json:"orders"`
	Sales      []*sale.Sale       `json:"sales"`
	Activities []*activity.Record `json:"activities"`
	Summary    Summary            `json:"summary"`
}

type Summary struct {
	OrderTotal       int64 `json:"orderTotal"`
	SalesTotal       int64 `json:"salesTotal"`
	Transactions     int   `json:"transactions"`
	UniqueActivities int   `json:"uniqueActivities"`
}

type Service struct {
	orders     *order.Service
	sales      *sale.Service
	activities *activity.Service
}

func NewService(orders *order.Service, sales *sale.Service, activities *activity.Service) *Service {
	return &Service{orders: orders, sales: sales, activities: activities}
}

// Build assembles the deduplicated, time-sorted report for a user.
func (s *Service) Build(ctx context.Context, user string, from, to *time.Time) (*Report, error) {
	orders, err := s.userOrders(ctx, user, from, to)
	if err != nil {
		return nil, fmt.Errorf("collecting orders: %w", err)
	}

	sales, err := s.userSales(ctx, user, from, to)
	if err != nil {
		return nil, fmt.Errorf("collecting sales: %w", err)
	}

	activities, err := s.userActivities(ctx, user, from, to)
	if err != nil {
		return nil, fmt.Errorf("collecting activities: %w", err)
	}

	rep := &Report{
		User:       user,
		From:       from,
		To:         to,
		Orders:     orders,
		Sales:      sales,
		Activities: activities,
	}

	for _, o := range orders {
		rep.Summary.OrderTotal += o.FinalAmount
	}

	for _, sl := range sales {
		rep.Summary.SalesTotal += sl.Total
	}

	rep.Summary.Transactions = len(orders) + len(sales)
	rep.Summary.UniqueActivities = len(activities)

	return rep, nil
}

func inRange(ts time.Time, from, to *time.Time) bool {
	if from != nil && ts.Before(*from) {
		return false
	}

	if to != nil && ts.After(*to) {
		return false
	}

	return true
}

func (s *Service) userOrders(ctx context.Context, user string, from, to *time.Time) ([]*order.Order, error) {
	all, err := s.orders.List(ctx, order.Filter{})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var orders []*order.Order

	for _, o := range all {
		if o.CreatedBy != user || o.Status != order.StatusCompleted || !inRange(o.OrderDate, from, to) {
			continue
		}

		if _, ok := seen[o.ID]; ok {
			continue
		}

		seen[o.ID] = struct{}{}
		orders = append(orders, o)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})

	return orders, nil
}

func (s *Service) userSales(ctx context.Context, user string, from, to *time.Time) ([]*sale.Sale, error) {
	all, err := s.sales.ListByUser(ctx, user)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var sales []*sale.Sale

	for _, sl := range all {
		if sl.Cashier != user || !inRange(sl.Date, from, to) {
			continue
		}

		if _, ok := seen[sl.ID]; ok {
			continue
		}

		seen[sl.ID] = struct{}{}
		sales = append(sales, sl)
	}

	sort.Slice(sales, func(i, j int) bool {
		return sales[i].Date.After(sales[j].Date)
	})

	return sales, nil
}

func (s *Service) userActivities(ctx context.Context, user string, from, to *time.Time) ([]*activity.Record, error) {
	all, err := s.activities.ListByUser(ctx, user)
	if err != nil {
		return nil, err
	}

	// Among records sharing a normalization key, the most recent wins.
	unique := make(map[string]*activity.Record)

	for _, rec := range all {
		if !inRange(rec.Timestamp, from, to) {
			continue
		}

		key := dedupKey(rec)
		if kept, ok := unique[key]; ok && !rec.Timestamp.After(kept.Timestamp) {
			continue
		}

		unique[key] = rec
	}

	records := make([]*activity.Record, 0, len(unique))
	for _, rec := range unique {
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	return records, nil
}
