package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fcsolar/pos/internal/auth"
	"github.com/fcsolar/pos/internal/report"
)

type Handler struct {
	svc *report.Service
	now func() time.Time
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.build)
	r.Get("/export", h.export)
}

func (h *Handler) params(r *http.Request) (user string, from, to *time.Time) {
	user = r.URL.Query().Get("user")
	if user == "" {
		user, _ = auth.UserFrom(r.Context())
	}

	if s := r.URL.Query().Get("from"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			from = &t
		}
	}

	if s := r.URL.Query().Get("to"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			to = &t
		}
	}

	return user, from, to
}

func (h *Handler) build(w http.ResponseWriter, r *http.Request) {
	user, from, to := h.params(r)

	rep, err := h.svc.Build(r.Context(), user, from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(rep); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	user, from, to := h.params(r)

	rep, err := h.svc.Build(r.Context(), user, from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	now := h.now()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.Filename(user, now)))

	if err := report.WriteCSV(w, rep, now); err != nil {
		slog.Error("failed to write csv export", "user", user, "error", err)
	}
}
