package order

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fcsolar/pos/internal/auth"
	"github.com/fcsolar/pos/internal/order"
)

type Handler struct {
	svc *order.Service
}

func NewHandler(svc *order.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createOrderRequest struct {
	CustomerName    string              `json:"customerName"`
	ContactNumber   string              `json:"contactNumber"`
	Email           string              `json:"email"`
	DeliveryAddress string              `json:"deliveryAddress"`
	Items           []order.Item        `json:"items"`
	TotalAmount     int64               `json:"totalAmount"`
	FinalAmount     int64               `json:"finalAmount"`
	Discount        int64               `json:"discount"`
	AdvancePayment  int64               `json:"advancePayment"`
	Status          order.Status        `json:"status"`
	PaymentMethod   order.PaymentMethod `json:"paymentMethod"`
	Notes           string              `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, _ := auth.UserFrom(r.Context())

	o, err := h.svc.Create(r.Context(), order.CreateParams{
		CustomerName:    req.CustomerName,
		ContactNumber:   req.ContactNumber,
		Email:           req.Email,
		DeliveryAddress: req.DeliveryAddress,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		FinalAmount:     req.FinalAmount,
		Discount:        req.Discount,
		AdvancePayment:  req.AdvancePayment,
		Status:          req.Status,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		CreatedBy:       user,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(o); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := order.Filter{
		Search: r.URL.Query().Get("search"),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := order.Status(s)
		filter.Status = &status
	}

	orders, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(o); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateOrderRequest struct {
	CustomerName    *string              `json:"customerName,omitempty"`
	ContactNumber   *string              `json:"contactNumber,omitempty"`
	Email           *string              `json:"email,omitempty"`
	DeliveryAddress *string              `json:"deliveryAddress,omitempty"`
	Items           *[]order.Item        `json:"items,omitempty"`
	TotalAmount     *int64               `json:"totalAmount,omitempty"`
	FinalAmount     *int64               `json:"finalAmount,omitempty"`
	Discount        *int64               `json:"discount,omitempty"`
	AdvancePayment  *int64               `json:"advancePayment,omitempty"`
	Status          *order.Status        `json:"status,omitempty"`
	PaymentMethod   *order.PaymentMethod `json:"paymentMethod,omitempty"`
	Notes           *string              `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updates := order.UpdateParams{
		CustomerName:    req.CustomerName,
		ContactNumber:   req.ContactNumber,
		Email:           req.Email,
		DeliveryAddress: req.DeliveryAddress,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		FinalAmount:     req.FinalAmount,
		Discount:        req.Discount,
		AdvancePayment:  req.AdvancePayment,
		Status:          req.Status,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	}

	// Completion is attributed to whoever is at the till.
	if req.Status != nil && *req.Status == order.StatusCompleted {
		if user, ok := auth.UserFrom(r.Context()); ok {
			updates.CompletedBy = &user
		}
	}

	o, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), updates)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(o); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
