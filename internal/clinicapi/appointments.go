package clinicapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/drganeshcs/clinic-booking-platform/internal/appointments"
	"github.com/drganeshcs/clinic-booking-platform/internal/booking"
	"github.com/drganeshcs/clinic-booking-platform/internal/slots"
)

// CreateAppointment books a new appointment via POST /appointments. The API
// returns the created record wrapped in an "appointment" envelope.
func (c *Client) CreateAppointment(ctx context.Context, req booking.CreateRequest) (*booking.Confirmation, error) {
	var out struct {
		Appointment booking.Confirmation `json:"appointment"`
	}
	if err := c.do(ctx, http.MethodPost, "/appointments", req, &out); err != nil {
		return nil, fmt.Errorf("clinicapi: create appointment: %w", err)
	}
	return &out.Appointment, nil
}

// TrackAppointment looks an appointment up by reference number.
func (c *Client) TrackAppointment(ctx context.Context, reference string) (*booking.Tracked, error) {
	var out booking.Tracked
	path := "/appointments/track/" + url.PathEscape(reference)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, booking.ErrNotFound
		}
		return nil, fmt.Errorf("clinicapi: track appointment: %w", err)
	}
	return &out, nil
}

// ListAppointments loads every appointment via GET /appointments/all. The
// context must carry a doctor token.
func (c *Client) ListAppointments(ctx context.Context) ([]appointments.Appointment, error) {
	var out struct {
		Appointments []appointments.Appointment `json:"appointments"`
	}
	if err := c.do(ctx, http.MethodGet, "/appointments/all", nil, &out); err != nil {
		return nil, fmt.Errorf("clinicapi: list appointments: %w", err)
	}
	return out.Appointments, nil
}

// UpdateAppointment writes a status or notes change via PUT /appointments/{id}.
func (c *Client) UpdateAppointment(ctx context.Context, id string, req appointments.UpdateRequest) (*appointments.Appointment, error) {
	var out appointments.Appointment
	path := "/appointments/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, req, &out); err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, appointments.ErrNotFound
		}
		return nil, fmt.Errorf("clinicapi: update appointment: %w", err)
	}
	return &out, nil
}

// GetSlots reads live occupancy via GET /slots/{hospitalId}/{date}.
func (c *Client) GetSlots(ctx context.Context, hospitalID, date string) ([]slots.Occupancy, error) {
	var out struct {
		Slots []slots.Occupancy `json:"slots"`
	}
	path := "/slots/" + url.PathEscape(hospitalID) + "/" + url.PathEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("clinicapi: get slots: %w", err)
	}
	return out.Slots, nil
}
