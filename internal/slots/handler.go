package slots

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/drganeshcs/clinic-booking-platform/internal/hospitals"
	"github.com/drganeshcs/clinic-booking-platform/internal/observability/metrics"
	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

// Handler serves slot availability queries.
type Handler struct {
	calc    *Calculator
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewHandler creates a slots handler.
func NewHandler(calc *Calculator, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{calc: calc, metrics: m, logger: logger}
}

// SlotsResponse is the response for a slot availability query.
type SlotsResponse struct {
	HospitalID string `json:"hospital_id"`
	Date       string `json:"date"`
	Source     Source `json:"source"`
	Slots      []Slot `json:"slots"`
}

// GetSlots handles GET /slots/{hospitalID}/{date}.
func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	hospitalID := chi.URLParam(r, "hospitalID")
	hospital, ok := hospitals.ByID(hospitalID)
	if !ok {
		http.Error(w, "unknown hospital", http.StatusNotFound)
		return
	}

	dateStr := chi.URLParam(r, "date")
	date, err := time.ParseInLocation(DateFormat, dateStr, time.Local)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	slots, source := h.calc.Compute(r.Context(), hospital, date)
	h.metrics.ObserveSlotComputation(string(source))

	resp := SlotsResponse{
		HospitalID: hospital.ID,
		Date:       dateStr,
		Source:     source,
		Slots:      slots,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListHospitals handles GET /hospitals.
func (h *Handler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"hospitals": hospitals.All()})
}
