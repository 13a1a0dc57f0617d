package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/fcsolar/pos/internal/activity"
	"github.com/fcsolar/pos/internal/identifier"
	"github.com/fcsolar/pos/internal/sale"
)

var ErrNotFound = errors.New("order not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=order
type Repository interface {
	Insert(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	Replace(ctx context.Context, o *Order) error
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Order, error)
}

// SaleRecorder materializes sales; the sales ledger guarantees at most one
// sale per originating order.
type SaleRecorder interface {
	Add(ctx context.Context, params sale.CreateParams) (*sale.Sale, error)
}

// Auditor appends to the user activity log.
type Auditor interface {
	Record(ctx context.Context, userID string, action activity.Action, details string) error
}

type Service struct {
	repo  Repository
	sales SaleRecorder
	audit Auditor
	ids   *identifier.Generator
	now   func() time.Time
}

func NewService(repo Repository, sales SaleRecorder, audit Auditor, ids *identifier.Generator) *Service {
	return &Service{
		repo:  repo,
		sales: sales,
		audit: audit,
		ids:   ids,
		now:   time.Now,
	}
}

type CreateParams struct {
	CustomerName    string
	ContactNumber   string
	Email           string
	DeliveryAddress string
	Items           []Item
	TotalAmount     int64
	FinalAmount     int64
	Discount        int64
	AdvancePayment  int64
	Status          Status
	PaymentMethod   PaymentMethod
	Notes           string
	CreatedBy       string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Order, error) {
	status := params.Status
	if status == "" {
		status = StatusPending
	}

	o := &Order{
		ID:              s.ids.NewID(identifier.PrefixOrder),
		CustomerName:    params.CustomerName,
		ContactNumber:   params.ContactNumber,
		Email:           params.Email,
		DeliveryAddress: params.DeliveryAddress,
		Items:           params.Items,
		TotalAmount:     params.TotalAmount,
		FinalAmount:     params.FinalAmount,
		Discount:        params.Discount,
		AdvancePayment:  params.AdvancePayment,
		Status:          status,
		PaymentMethod:   params.PaymentMethod,
		Notes:           params.Notes,
		CreatedBy:       params.CreatedBy,
		OrderDate:       s.now(),
	}

	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	s.log(ctx, o.CreatedBy, activity.ActionOrderCreated, fmt.Sprintf("New order %s created", o.ID))

	return o, nil
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	CustomerName    *string
	ContactNumber   *string
	Email           *string
	DeliveryAddress *string
	Items           *[]Item
	TotalAmount     *int64
	FinalAmount     *int64
	Discount        *int64
	AdvancePayment  *int64
	Status          *Status
	PaymentMethod   *PaymentMethod
	Notes           *string
	CompletedBy     *string
}

// Update merges the partial update into the order. The transition to
// completed materializes a sale exactly once: an order that already carries
// a SaleID keeps it, no matter how many times completion is retried.
func (s *Service) Update(ctx context.Context, id string, updates UpdateParams) (*Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	prevStatus := o.Status
	s.merge(o, updates)

	switch {
	case updates.Status != nil && *updates.Status == StatusCompleted && o.SaleID == "":
		completedBy := o.CreatedBy
		if updates.CompletedBy != nil && *updates.CompletedBy != "" {
			completedBy = *updates.CompletedBy
		}

		completedDate := s.now()
		o.CompletedDate = &completedDate
		o.CompletedBy = completedBy

		saleID, err := s.createSaleFromOrder(ctx, o)
		if err != nil {
			return nil, fmt.Errorf("completing order %s: %w", o.ID, err)
		}

		o.SaleID = saleID

		s.log(ctx, completedBy, activity.ActionOrderCompleted,
			fmt.Sprintf("Order %s completed by %s", o.ID, completedBy))

	case updates.Status != nil && *updates.Status != prevStatus:
		s.log(ctx, o.CreatedBy, activity.ActionOrderStatusUpdated,
			fmt.Sprintf("Order %s status updated: %s → %s", o.ID, prevStatus, *updates.Status))
	}

	if err := s.repo.Replace(ctx, o); err != nil {
		return nil, fmt.Errorf("updating order %s: %w", o.ID, err)
	}

	return o, nil
}

func (s *Service) createSaleFromOrder(ctx context.Context, o *Order) (string, error) {
	cashier := o.CompletedBy
	if cashier == "" {
		cashier = o.CreatedBy
	}
	if cashier == "" {
		cashier = "System"
	}

	items := make([]sale.Item, len(o.Items))
	for i, item := range o.Items {
		items[i] = sale.Item{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Price}
	}

	newSale, err := s.sales.Add(ctx, sale.CreateParams{
		Items:           items,
		Subtotal:        o.TotalAmount,
		Total:           o.FinalAmount,
		Discount:        o.Discount,
		PaymentReceived: o.AdvancePayment,
		Change:          0,
		Cashier:         cashier,
		OrderID:         o.ID,
		CustomerName:    o.CustomerName,
		CompletedBy:     cashier,
	})
	if err != nil {
		return "", err
	}

	s.log(ctx, o.CompletedBy, activity.ActionSaleCreatedFromOrder,
		fmt.Sprintf("Sale created from order %s", o.ID))

	return newSale.ID, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	// Captured before removal so the log still names the order.
	s.log(ctx, o.CreatedBy, activity.ActionOrderDeleted, fmt.Sprintf("Order %s deleted", o.ID))

	if err := s.repo.Remove(ctx, id); err != nil {
		return fmt.Errorf("deleting order %s: %w", id, err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.Get(ctx, id)
}

type Filter struct {
	Status *Status
	Search string
}

// List returns orders matching the filter, newest first. Search matches the
// customer name or the order id, case-insensitively.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Order, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(filter.Search)

	var orders []*Order

	for _, o := range all {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(o.CustomerName), search) &&
			!strings.Contains(strings.ToLower(o.ID), search) {
			continue
		}

		orders = append(orders, o)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})

	return orders, nil
}

// ListCompletedByUser returns completed orders the user either created or
// completed.
func (s *Service) ListCompletedByUser(ctx context.Context, userID string) ([]*Order, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var orders []*Order

	for _, o := range all {
		if o.Status == StatusCompleted && (o.CreatedBy == userID || o.CompletedBy == userID) {
			orders = append(orders, o)
		}
	}

	return orders, nil
}

func (s *Service) merge(o *Order, updates UpdateParams) {
	if updates.CustomerName != nil {
		o.CustomerName = *updates.CustomerName
	}

	if updates.ContactNumber != nil {
		o.ContactNumber = *updates.ContactNumber
	}

	if updates.Email != nil {
		o.Email = *updates.Email
	}

	if updates.DeliveryAddress != nil {
		o.DeliveryAddress = *updates.DeliveryAddress
	}

	if updates.Items != nil {
		o.Items = *updates.Items
	}

	if updates.TotalAmount != nil {
		o.TotalAmount = *updates.TotalAmount
	}

	if updates.FinalAmount != nil {
		o.FinalAmount = *updates.FinalAmount
	}

	if updates.Discount != nil {
		o.Discount = *updates.Discount
	}

	if updates.AdvancePayment != nil {
		o.AdvancePayment = *updates.AdvancePayment
	}

	if updates.Status != nil {
		o.Status = *updates.Status
	}

	if updates.PaymentMethod != nil {
		o.PaymentMethod = *updates.PaymentMethod
	}

	if updates.Notes != nil {
		o.Notes = *updates.Notes
	}

	if updates.CompletedBy != nil {
		o.CompletedBy = *updates.CompletedBy
	}
}

func (s *Service) log(ctx context.Context, userID string, action activity.Action, details string) {
	if err := s.audit.Record(ctx, userID, action, details); err != nil {
		slog.Error("failed to log order activity", "action", action, "error", err)
	}
}
