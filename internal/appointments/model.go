// Package appointments manages the doctor-facing appointment lifecycle: the
// local mirror of server-owned appointments, status transitions, notes, and
// list filtering.
package appointments

import (
	"errors"
	"time"
)

// Status is an appointment lifecycle state. The set is flat: any status may
// be set from any other by an explicit doctor action; no transition table is
// enforced.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusFollowUp  Status = "follow-up"
	StatusNoShow    Status = "no-show"
)

// AllStatuses lists every lifecycle status.
var AllStatuses = []Status{
	StatusPending, StatusConfirmed, StatusCompleted,
	StatusCancelled, StatusFollowUp, StatusNoShow,
}

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusFollowUp, StatusNoShow:
		return true
	}
	return false
}

// HospitalRef names the hospital an appointment was booked at.
type HospitalRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Appointment is the client-side projection of a server-owned appointment.
// The server assigns ID and ReferenceNumber; this service never deletes one.
type Appointment struct {
	ID                 string      `json:"id"`
	ReferenceNumber    string      `json:"reference_number"`
	Name               string      `json:"name"`
	Email              string      `json:"email,omitempty"`
	PhoneNumber        string      `json:"phoneNumber"`
	Age                int         `json:"age"`
	Gender             string      `json:"gender"`
	Address            string      `json:"address"`
	ProblemDescription string      `json:"problemDescription,omitempty"`
	Hospital           HospitalRef `json:"hospital"`
	Date               string      `json:"date"` // YYYY-MM-DD
	Time               string      `json:"time"` // display label
	Status             Status      `json:"status"`
	DoctorNotes        string      `json:"doctorNotes,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// UpdateRequest is the payload for PUT /appointments/{id} on the clinic API.
// Either field may be omitted.
type UpdateRequest struct {
	Status      Status `json:"status,omitempty"`
	DoctorNotes string `json:"doctor_notes,omitempty"`
}

var (
	// ErrInvalidStatus is returned for a status outside the lifecycle set.
	ErrInvalidStatus = errors.New("appointments: invalid status")

	// ErrNotFound is returned when an appointment id is not in the mirror.
	ErrNotFound = errors.New("appointments: appointment not found")
)
