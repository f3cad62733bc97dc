// Package booking builds a patient's appointment request step by step and
// submits it to the clinic API. A draft survives a failed submission so the
// patient can correct and retry without re-entering everything.
package booking

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/drganeshcs/clinic-booking-platform/internal/hospitals"
	"github.com/drganeshcs/clinic-booking-platform/internal/observability/metrics"
	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

var bookingTracer = otel.Tracer("clinic.internal.booking")

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// PatientDetails is the booking form as the patient fills it in.
type PatientDetails struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Age                string `json:"age"`
	Gender             string `json:"gender"`
	Address            string `json:"address"`
	ProblemDescription string `json:"problemDescription"`
}

// ValidationErrors maps a form field to its message. Empty means valid.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	return "booking: invalid fields: " + strings.Join(fields, ", ")
}

// Validate checks the details per the booking form rules. Email is the only
// optional field.
func (p PatientDetails) Validate() ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(p.Address) == "" {
		errs["address"] = "Address is required"
	}

	age, perDigit := 0, true
	for _, r := range strings.TrimSpace(p.Age) {
		if r < '0' || r > '9' {
			perDigit = false
			break
		}
		age = age*10 + int(r-'0')
	}
	if strings.TrimSpace(p.Age) == "" || !perDigit || age < 1 || age > 120 {
		errs["age"] = "Age must be between 1 and 120"
	}

	switch p.Gender {
	case "Male", "Female":
	default:
		errs["gender"] = "Please select a gender"
	}

	if p.Email != "" && !emailPattern.MatchString(p.Email) {
		errs["email"] = "Please enter a valid email address"
	}

	digits := nonDigits.ReplaceAllString(p.Phone, "")
	if len(digits) < 10 || len(digits) > 15 {
		errs["phone"] = "Phone number must be 10 to 15 digits"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// CreateRequest is the payload for POST /appointments on the clinic API.
type CreateRequest struct {
	PatientName        string `json:"patientName"`
	PatientEmail       string `json:"patientEmail,omitempty"`
	PatientPhone       string `json:"patientPhone"`
	PatientAge         int    `json:"patientAge"`
	PatientGender      string `json:"patientGender"`
	PatientAddress     string `json:"patientAddress"`
	ProblemDescription string `json:"problemDescription,omitempty"`
	Hospital           string `json:"hospital"`
	Date               string `json:"date"`
	Time               string `json:"time"`
}

// Confirmation is what the clinic API returns for a created appointment.
type Confirmation struct {
	ID              string `json:"id"`
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status"`
}

// Creator submits a finished draft to the clinic API.
type Creator interface {
	CreateAppointment(ctx context.Context, req CreateRequest) (*Confirmation, error)
}

// Draft accumulates a booking across the hospital, slot, and details steps.
// Steps may be revisited in any order; Submit refuses until all three are
// complete.
type Draft struct {
	mu       sync.Mutex
	hospital *hospitals.Hospital
	date     string
	timeSlot string
	details  *PatientDetails
}

// NewDraft starts an empty draft.
func NewDraft() *Draft {
	return &Draft{}
}

// SelectHospital sets the hospital step. Changing hospital clears any
// previously chosen slot, since slot windows are hospital-specific.
func (d *Draft) SelectHospital(h hospitals.Hospital) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.hospital != nil && d.hospital.ID != h.ID {
		d.date = ""
		d.timeSlot = ""
	}
	d.hospital = &h
}

// SelectSlot sets the date and display time of the chosen slot.
func (d *Draft) SelectSlot(date, timeSlot string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.date = date
	d.timeSlot = timeSlot
}

// SubmitPatientDetails validates and stores the form step. On validation
// failure the previous details are kept.
func (d *Draft) SubmitPatientDetails(p PatientDetails) ValidationErrors {
	if errs := p.Validate(); errs != nil {
		return errs
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.details = &p
	return nil
}

// Complete reports whether every step has been filled in.
func (d *Draft) Complete() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hospital != nil && d.date != "" && d.timeSlot != "" && d.details != nil
}

// Request assembles the clinic API payload. It returns an error if the draft
// is incomplete.
func (d *Draft) Request() (CreateRequest, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.hospital == nil {
		return CreateRequest{}, ErrNoHospital
	}
	if d.date == "" || d.timeSlot == "" {
		return CreateRequest{}, ErrNoSlot
	}
	if d.details == nil {
		return CreateRequest{}, ErrNoDetails
	}
	// Age was validated as numeric when the details were submitted.
	age, _ := strconv.Atoi(strings.TrimSpace(d.details.Age))
	return CreateRequest{
		PatientName:        strings.TrimSpace(d.details.Name),
		PatientEmail:       strings.TrimSpace(d.details.Email),
		PatientPhone:       d.details.Phone,
		PatientAge:         age,
		PatientGender:      d.details.Gender,
		PatientAddress:     strings.TrimSpace(d.details.Address),
		ProblemDescription: strings.TrimSpace(d.details.ProblemDescription),
		Hospital:           d.hospital.Name,
		Date:               d.date,
		Time:               d.timeSlot,
	}, nil
}

// reset clears the draft after a successful submission.
func (d *Draft) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hospital = nil
	d.date = ""
	d.timeSlot = ""
	d.details = nil
}

// Service submits drafts and one-shot requests to the clinic API.
type Service struct {
	creator Creator
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewService constructs a booking service.
func NewService(creator Creator, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if creator == nil {
		panic("booking: creator required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{creator: creator, metrics: m, logger: logger}
}

// Submit sends a complete draft upstream. On success the draft resets; on
// failure it is left intact for retry.
func (s *Service) Submit(ctx context.Context, d *Draft) (*Confirmation, error) {
	req, err := d.Request()
	if err != nil {
		return nil, err
	}

	conf, err := s.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	d.reset()
	return conf, nil
}

// Create validates and submits a fully assembled request.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Confirmation, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("clinic.hospital", req.Hospital),
		attribute.String("clinic.date", req.Date),
	)

	if errs := (PatientDetails{
		Name:    req.PatientName,
		Email:   req.PatientEmail,
		Phone:   req.PatientPhone,
		Age:     strconv.Itoa(req.PatientAge),
		Gender:  req.PatientGender,
		Address: req.PatientAddress,
	}).Validate(); errs != nil {
		s.metrics.ObserveAppointmentCreated("invalid")
		return nil, errs
	}
	if req.Hospital == "" || req.Date == "" || req.Time == "" {
		s.metrics.ObserveAppointmentCreated("invalid")
		return nil, ErrNoSlot
	}

	conf, err := s.creator.CreateAppointment(ctx, req)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveAppointmentCreated("error")
		return nil, fmt.Errorf("booking: create appointment: %w", err)
	}

	s.metrics.ObserveAppointmentCreated("created")
	s.logger.Info("appointment created",
		"reference", conf.ReferenceNumber, "hospital", req.Hospital, "date", req.Date)
	return conf, nil
}
