package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

// Tracked is the public view of an appointment looked up by reference.
type Tracked struct {
	ReferenceNumber string `json:"reference_number"`
	Name            string `json:"name"`
	Hospital        string `json:"hospital"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Status          string `json:"status"`
}

// Tracker looks an appointment up by its reference number.
type Tracker interface {
	TrackAppointment(ctx context.Context, reference string) (*Tracked, error)
}

// Handler serves the public booking endpoints.
type Handler struct {
	svc     *Service
	tracker Tracker
	logger  *logging.Logger
}

// NewHandler creates a booking handler.
func NewHandler(svc *Service, tracker Tracker, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, tracker: tracker, logger: logger}
}

// errorResponse mirrors the clinic API's error shape.
type errorResponse struct {
	Error  string           `json:"error"`
	Fields ValidationErrors `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, fields ValidationErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg, Fields: fields})
}

// upstreamMessage strips the wrapping prefixes from a clinic API error so
// the user sees the upstream message verbatim.
func upstreamMessage(err error) string {
	var um interface{ UpstreamMessage() string }
	if errors.As(err, &um) {
		return um.UpstreamMessage()
	}
	return err.Error()
}

// Create handles POST /appointments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	conf, err := h.svc.Create(r.Context(), req)
	if err != nil {
		var fieldErrs ValidationErrors
		if errors.As(err, &fieldErrs) {
			writeError(w, http.StatusBadRequest, "Validation failed", fieldErrs)
			return
		}
		if errors.Is(err, ErrNoSlot) {
			writeError(w, http.StatusBadRequest, "Hospital, date and time are required", nil)
			return
		}
		h.logger.Error("failed to create appointment", "error", err)
		writeError(w, http.StatusBadGateway, upstreamMessage(err), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(conf)
}

// Track handles GET /appointments/track/{reference}.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "reference")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "missing reference number", nil)
		return
	}

	tracked, err := h.tracker.TrackAppointment(r.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "Appointment not found", nil)
			return
		}
		h.logger.Error("failed to track appointment", "error", err, "reference", ref)
		writeError(w, http.StatusBadGateway, upstreamMessage(err), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tracked)
}
