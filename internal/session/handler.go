package session

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

// Handler serves the auth endpoints.
type Handler struct {
	gate   *Gate
	logger *logging.Logger
}

// NewHandler creates a session handler.
func NewHandler(gate *Gate, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{gate: gate, logger: logger}
}

// Login handles POST /auth/doctor-login. A bad credential answers 401 with
// the same LoginResult shape, so the portal can show the upstream message.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if creds.LoginType != LoginTypePassword && creds.LoginType != LoginTypePIN {
		http.Error(w, "loginType must be password or pin", http.StatusBadRequest)
		return
	}

	result, err := h.gate.Login(r.Context(), creds)
	if err != nil {
		h.logger.Error("login failed", "error", err)
		http.Error(w, "Authentication service unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !result.Success {
		w.WriteHeader(http.StatusUnauthorized)
	}
	json.NewEncoder(w).Encode(result)
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "missing authorization header", http.StatusUnauthorized)
		return
	}
	if err := h.gate.Logout(r.Context(), token); err != nil {
		h.logger.Error("logout failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
