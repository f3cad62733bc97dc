package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

// Handler serves the doctor-facing appointment endpoints. All routes are
// mounted behind the doctor session middleware.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates an appointments handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// ListResponse is the response for listing appointments.
type ListResponse struct {
	Appointments []Appointment `json:"appointments"`
	Count        int           `json:"count"`
}

// upstreamMessage strips the wrapping prefixes from a clinic API error so
// the portal shows the upstream message verbatim.
func upstreamMessage(err error) string {
	var um interface{ UpstreamMessage() string }
	if errors.As(err, &um) {
		return um.UpstreamMessage()
	}
	return err.Error()
}

// List handles GET /doctor/appointments. Filter options come from query
// params: date, search, status, hospital.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	appts, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to load appointments", "error", err)
		http.Error(w, upstreamMessage(err), http.StatusBadGateway)
		return
	}

	q := r.URL.Query()
	opts := FilterOptions{
		Date:       q.Get("date"),
		SearchTerm: q.Get("search"),
		Status:     q.Get("status"),
		HospitalID: q.Get("hospital"),
	}
	filtered := Filter(appts, opts)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{Appointments: filtered, Count: len(filtered)})
}

// StatusRequest is the body for a status transition.
type StatusRequest struct {
	Status Status `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// SetStatus handles PUT /doctor/appointments/{id}/status.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.svc.SetStatus(r.Context(), id, req.Status, req.Notes)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to update status", "error", err, "id", id)
		http.Error(w, upstreamMessage(err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// NotesRequest is the body for saving doctor notes.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// AddNotes handles PUT /doctor/appointments/{id}/notes.
func (h *Handler) AddNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req NotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.svc.AddNotes(r.Context(), id, req.Notes)
	if err != nil {
		h.logger.Error("failed to save notes", "error", err, "id", id)
		http.Error(w, upstreamMessage(err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Summary handles GET /doctor/appointments/summary?date=YYYY-MM-DD.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "missing date", http.StatusBadRequest)
		return
	}

	appts, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to load appointments", "error", err)
		http.Error(w, upstreamMessage(err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Summarize(appts, date))
}
