package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/booking-atlas/pkg/models/api"
	"github.com/de-tools/booking-atlas/pkg/services/auth"
)

type Handler struct {
	auth auth.Service
}

func NewHandler(svc auth.Service) *Handler {
	return &Handler{auth: svc}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.AdminID = strings.TrimSpace(req.AdminID)
	if req.AdminID == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "admin_id and password are required")
		return
	}

	token, err := h.auth.Login(ctx, req.AdminID, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	case errors.Is(err, auth.ErrAccountDisabled):
		writeError(w, http.StatusForbidden, "account is disabled")
		return
	case err != nil:
		logger.Error().Err(err).Msg("login failed")
		writeError(w, http.StatusInternalServerError, "login unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.LoginResponse{Token: token, AdminID: req.AdminID}); err != nil {
		logger.Error().Err(err).Msg("failed to encode login response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Message: message})
}
