package sale

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/fcsolar/pos/internal/activity"
	"github.com/fcsolar/pos/internal/identifier"
)

var (
	ErrNotFound            = errors.New("sale not found")
	ErrNoItems             = errors.New("no products selected")
	ErrNoCashier           = errors.New("user not authenticated")
	ErrInsufficientPayment = errors.New("insufficient payment")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sale
type Repository interface {
	// Insert appends the sale and persists the collection. If another sale
	// already references the same originating order, the stored sale is
	// returned instead and nothing is written.
	Insert(ctx context.Context, s *Sale) (*Sale, error)
	Get(ctx context.Context, id string) (*Sale, error)
	List(ctx context.Context) ([]*Sale, error)
	Clear(ctx context.Context) error
}

// Auditor appends to the user activity log.
type Auditor interface {
	Record(ctx context.Context, userID string, action activity.Action, details string) error
}

type Service struct {
	repo     Repository
	ids      *identifier.Generator
	audit    Auditor
	location string
	now      func() time.Time
}

func NewService(repo Repository, ids *identifier.Generator, audit Auditor, location string) *Service {
	return &Service{
		repo:     repo,
		ids:      ids,
		audit:    audit,
		location: location,
		now:      time.Now,
	}
}

type CreateParams struct {
	Items           []Item
	Subtotal        int64
	Total           int64
	Discount        int64
	PaymentReceived int64
	Change          int64
	Date            time.Time
	Cashier         string
	OrderID         string
	CustomerName    string
	CompletedBy     string
}

// Add records a sale. At most one sale may reference a given originating
// order: a retried completion gets the already-recorded sale back unchanged.
func (s *Service) Add(ctx context.Context, params CreateParams) (*Sale, error) {
	date := params.Date
	if date.IsZero() {
		date = s.now()
	}

	saleType := TypeDirect
	if params.OrderID != "" {
		saleType = TypeOrder
	}

	completedBy := params.CompletedBy
	if completedBy == "" {
		completedBy = params.Cashier
	}

	newSale := &Sale{
		ID:              s.ids.NewID(identifier.PrefixSale),
		Items:           params.Items,
		Subtotal:        params.Subtotal,
		Total:           params.Total,
		Discount:        params.Discount,
		PaymentReceived: params.PaymentReceived,
		Change:          params.Change,
		Date:            date,
		Cashier:         params.Cashier,
		StoreLocation:   s.location,
		Type:            saleType,
		OrderID:         params.OrderID,
		CustomerName:    params.CustomerName,
		CompletedBy:     completedBy,
	}

	stored, err := s.repo.Insert(ctx, newSale)
	if err != nil {
		return nil, fmt.Errorf("adding sale: %w", err)
	}

	if stored.ID != newSale.ID {
		slog.Warn("sale already exists for order", "order_id", params.OrderID, "sale_id", stored.ID)
	}

	return stored, nil
}

type CheckoutParams struct {
	Items           []Item
	Discount        int64
	PaymentReceived int64
	Cashier         string
	CustomerName    string
}

// Checkout rings up a direct sale at the counter: validates the cart and
// payment, computes totals and change, then records the sale.
func (s *Service) Checkout(ctx context.Context, params CheckoutParams) (*Sale, error) {
	if params.Cashier == "" {
		return nil, ErrNoCashier
	}

	if len(params.Items) == 0 {
		return nil, ErrNoItems
	}

	var subtotal int64
	for _, item := range params.Items {
		subtotal += int64(item.Quantity) * item.Price
	}

	total := subtotal - params.Discount
	if params.PaymentReceived < total {
		return nil, ErrInsufficientPayment
	}

	customer := params.CustomerName
	if customer == "" {
		customer = "Walk-in Customer"
	}

	sold, err := s.Add(ctx, CreateParams{
		Items:           params.Items,
		Subtotal:        subtotal,
		Total:           total,
		Discount:        params.Discount,
		PaymentReceived: params.PaymentReceived,
		Change:          params.PaymentReceived - total,
		Cashier:         params.Cashier,
		CustomerName:    customer,
		CompletedBy:     params.Cashier,
	})
	if err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, params.Cashier, activity.ActionSaleCompleted,
		fmt.Sprintf("Sale %s completed", sold.ID)); err != nil {
		slog.Error("failed to log sale activity", "sale_id", sold.ID, "error", err)
	}

	return sold, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Sale, error) {
	return s.repo.Get(ctx, id)
}

// ListByUser returns the sales rung up or completed by the user, most
// recent first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Sale, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var sales []*Sale

	for _, sl := range all {
		if sl.Cashier == userID || sl.CompletedBy == userID {
			sales = append(sales, sl)
		}
	}

	sort.Slice(sales, func(i, j int) bool {
		return sales[i].Date.After(sales[j].Date)
	})

	return sales, nil
}

// Clear empties the ledger and its persisted slice.
func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
