package appointments

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/drganeshcs/clinic-booking-platform/internal/notify"
	"github.com/drganeshcs/clinic-booking-platform/internal/observability/metrics"
	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

var appointmentsTracer = otel.Tracer("clinic.internal.appointments")

// Store is the clinic API surface the lifecycle manager needs.
type Store interface {
	ListAppointments(ctx context.Context) ([]Appointment, error)
	UpdateAppointment(ctx context.Context, id string, req UpdateRequest) (*Appointment, error)
}

// Service drives the doctor-side appointment lifecycle. It keeps a local
// mirror of the server-owned list; the mirror is only updated after the
// remote call succeeds, so a failed update leaves local state untouched.
type Service struct {
	store    Store
	notifier notify.Notifier
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger

	mu     sync.RWMutex
	mirror map[string]Appointment
}

// NewService constructs a lifecycle service.
func NewService(store Store, notifier notify.Notifier, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if store == nil {
		panic("appointments: store required")
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:    store,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		mirror:   make(map[string]Appointment),
	}
}

// List loads all appointments from the clinic API and refreshes the mirror.
func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.list")
	defer span.End()

	appts, err := s.store.ListAppointments(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("appointments: list: %w", err)
	}

	s.mu.Lock()
	s.mirror = make(map[string]Appointment, len(appts))
	for _, a := range appts {
		s.mirror[a.ID] = a
	}
	s.mu.Unlock()

	return appts, nil
}

// Get returns the mirrored appointment, if the id has been loaded.
func (s *Service) Get(id string) (Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.mirror[id]
	return a, ok
}

// SetStatus transitions an appointment to newStatus, optionally attaching
// notes, then notifies the patient. The remote write happens first; only on
// success is the mirror updated. Notification failure is logged, never
// surfaced: the transition has already been persisted.
func (s *Service) SetStatus(ctx context.Context, id string, newStatus Status, notes string) (*Appointment, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	ctx, span := appointmentsTracer.Start(ctx, "appointments.set_status")
	defer span.End()
	span.SetAttributes(
		attribute.String("clinic.appointment_id", id),
		attribute.String("clinic.new_status", string(newStatus)),
	)

	req := UpdateRequest{Status: newStatus}
	if notes != "" {
		req.DoctorNotes = notes
	}

	updated, err := s.store.UpdateAppointment(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveStatusTransition(string(newStatus), "error")
		return nil, fmt.Errorf("appointments: set status: %w", err)
	}

	s.remember(*updated)
	s.metrics.ObserveStatusTransition(string(newStatus), "ok")
	s.logger.Info("appointment status updated",
		"id", id, "status", newStatus, "reference", updated.ReferenceNumber)

	s.notifyPatient(ctx, *updated, newStatus)
	return updated, nil
}

// AddNotes persists doctor notes without touching the status.
func (s *Service) AddNotes(ctx context.Context, id, text string) (*Appointment, error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.add_notes")
	defer span.End()
	span.SetAttributes(attribute.String("clinic.appointment_id", id))

	updated, err := s.store.UpdateAppointment(ctx, id, UpdateRequest{DoctorNotes: text})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("appointments: add notes: %w", err)
	}

	s.remember(*updated)
	s.logger.Info("appointment notes saved", "id", id)
	return updated, nil
}

func (s *Service) remember(a Appointment) {
	s.mu.Lock()
	s.mirror[a.ID] = a
	s.mu.Unlock()
}

func (s *Service) notifyPatient(ctx context.Context, a Appointment, newStatus Status) {
	n := notify.Notification{
		PatientName:  a.Name,
		PatientPhone: a.PhoneNumber,
		PatientEmail: a.Email,
		Date:         a.Date,
		Time:         a.Time,
		Status:       string(newStatus),
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.metrics.ObserveNotification("failed")
		s.logger.Error("appointments: patient notification failed",
			"error", err, "id", a.ID, "status", newStatus)
		return
	}
	s.metrics.ObserveNotification("sent")
}
