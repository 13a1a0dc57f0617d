package sale

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fcsolar/pos/internal/auth"
	"github.com/fcsolar/pos/internal/receipt"
	"github.com/fcsolar/pos/internal/sale"
)

type Handler struct {
	svc      *sale.Service
	receipts *receipt.Renderer
}

func NewHandler(svc *sale.Service, receipts *receipt.Renderer) *Handler {
	return &Handler{svc: svc, receipts: receipts}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.checkout)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/receipt", h.printReceipt)
	r.Delete("/", h.clear)
}

type checkoutRequest struct {
	Items           []sale.Item `json:"items"`
	Discount        int64       `json:"discount"`
	PaymentReceived int64       `json:"paymentReceived"`
	CustomerName    string      `json:"customerName"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cashier, _ := auth.UserFrom(r.Context())

	sold, err := h.svc.Checkout(r.Context(), sale.CheckoutParams{
		Items:           req.Items,
		Discount:        req.Discount,
		PaymentReceived: req.PaymentReceived,
		Cashier:         cashier,
		CustomerName:    req.CustomerName,
	})
	if err != nil {
		switch {
		case errors.Is(err, sale.ErrNoItems),
			errors.Is(err, sale.ErrNoCashier),
			errors.Is(err, sale.ErrInsufficientPayment):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(sold); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		user, _ = auth.UserFrom(r.Context())
	}

	sales, err := h.svc.ListByUser(r.Context(), user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(sales); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sale.ErrNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(s); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) printReceipt(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sale.ErrNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(h.receipts.Render(s))); err != nil {
		slog.Error("failed to write receipt", "sale_id", s.ID, "error", err)
	}
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
