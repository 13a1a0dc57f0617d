package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fcsolar/pos/internal/activity"
	"github.com/fcsolar/pos/internal/auth"
)

type Handler struct {
	svc   *auth.Service
	audit *activity.Service
}

func NewHandler(svc *auth.Service, audit *activity.Service) *Handler {
	return &Handler{svc: svc, audit: audit}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
}

type loginRequest struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Username, req.PIN)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if err := h.audit.Record(r.Context(), req.Username, activity.ActionUserLogin,
		fmt.Sprintf("User %s logged in", req.Username)); err != nil {
		slog.Error("failed to log login activity", "user", req.Username, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(loginResponse{Token: token, Username: req.Username}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
