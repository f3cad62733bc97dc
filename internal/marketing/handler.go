package marketing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

// Handler serves the public marketing endpoints.
type Handler struct {
	backend Backend
	logger  *logging.Logger
}

// NewHandler creates a marketing handler.
func NewHandler(backend Backend, logger *logging.Logger) *Handler {
	if backend == nil {
		panic("marketing: backend required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{backend: backend, logger: logger}
}

// upstreamMessage strips the wrapping prefixes from a clinic API error so
// the visitor sees the upstream message verbatim.
func upstreamMessage(err error) string {
	var um interface{ UpstreamMessage() string }
	if errors.As(err, &um) {
		return um.UpstreamMessage()
	}
	return err.Error()
}

// SubmitContact handles POST /contact.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var msg ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !msg.Valid() {
		http.Error(w, "Name and message are required", http.StatusBadRequest)
		return
	}

	if err := h.backend.SubmitContact(r.Context(), msg); err != nil {
		h.logger.Error("failed to submit contact message", "error", err)
		http.Error(w, upstreamMessage(err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// ListReviews handles GET /reviews.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.backend.ListReviews(r.Context())
	if err != nil {
		h.logger.Error("failed to load reviews", "error", err)
		http.Error(w, upstreamMessage(err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviews)
}
