package clinicapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drganeshcs/clinic-booking-platform/internal/appointments"
	"github.com/drganeshcs/clinic-booking-platform/internal/booking"
	"github.com/drganeshcs/clinic-booking-platform/internal/content"
	"github.com/drganeshcs/clinic-booking-platform/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL})
}

func TestDoctorLoginSuccess(t *testing.T) {
	var gotBody session.Credentials
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/doctor-login", r.URL.Path)
		require.NoError(t, jsonDecode(r, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"upstream-jwt","user":{"id":"u1","name":"Dr. Ganesh","role":"doctor"}}`))
	}))

	out, err := c.DoctorLogin(context.Background(), session.Credentials{
		LoginType: "pin", PIN: "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "upstream-jwt", out.Token)
	assert.Equal(t, "doctor", out.User.Role)
	assert.Equal(t, "123456", gotBody.PIN)
}

func TestDoctorLoginRejectedMapsToInvalidCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid PIN"}`))
	}))

	_, err := c.DoctorLogin(context.Background(), session.Credentials{LoginType: "pin", PIN: "000000"})
	require.ErrorIs(t, err, session.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "Invalid PIN", "upstream message must survive verbatim")
}

func TestCreateAppointment(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/appointments", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"appointment":{"id":"a1","reference_number":"REF-123","status":"pending"}}`))
	}))

	conf, err := c.CreateAppointment(context.Background(), booking.CreateRequest{PatientName: "Jane Doe"})
	require.NoError(t, err)
	assert.NotEmpty(t, conf.ReferenceNumber, "reference must survive the appointment envelope")
	assert.Equal(t, "REF-123", conf.ReferenceNumber)
	assert.Equal(t, "pending", conf.Status)
}

func TestTrackAppointmentNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Appointment not found"}`))
	}))

	_, err := c.TrackAppointment(context.Background(), "NOPE")
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestListAppointmentsSendsBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/appointments/all", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"appointments":[{"id":"a1","name":"Jane Doe","status":"pending"}]}`))
	}))

	ctx := ContextWithToken(context.Background(), "doctor-token")
	appts, err := c.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, appointments.StatusPending, appts[0].Status)
	assert.Equal(t, "Bearer doctor-token", gotAuth)
}

func TestUpdateAppointment(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/appointments/a1", r.URL.Path)
		var req appointments.UpdateRequest
		require.NoError(t, jsonDecode(r, &req))
		require.Equal(t, appointments.StatusConfirmed, req.Status)
		w.Write([]byte(`{"id":"a1","status":"confirmed"}`))
	}))

	updated, err := c.UpdateAppointment(context.Background(), "a1", appointments.UpdateRequest{
		Status: appointments.StatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, appointments.StatusConfirmed, updated.Status)
}

func TestGetSlots(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/slots/moon/2026-09-05", r.URL.Path)
		w.Write([]byte(`{"slots":[{"start_time":"15:00","current_appointments":7,"max_appointments":20}]}`))
	}))

	occ, err := c.GetSlots(context.Background(), "moon", "2026-09-05")
	require.NoError(t, err)
	require.Len(t, occ, 1)
	assert.Equal(t, 7, occ[0].CurrentAppointments)
}

func TestContentCRUD(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /content":
			w.Write([]byte(`{"content":[{"id":"c1","title":"Cataract care","content_type":"youtube","content_url":"https://youtu.be/dQw4w9WgXcQ","category":"general","tags":["eye"],"is_published":true}]}`))
		case "POST /content":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"c2","title":"New video","content_type":"youtube"}`))
		case "DELETE /content/c1":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Content not found"}`))
		}
	}))
	ctx := context.Background()

	items, err := c.ListContent(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, content.PlatformYouTube, items[0].Platform)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", items[0].URL)
	assert.Equal(t, "general", items[0].Category)
	assert.Equal(t, []string{"eye"}, items[0].Tags)
	assert.True(t, items[0].Published)

	created, err := c.CreateContent(ctx, content.CreateRequest{Title: "New video", Platform: content.PlatformYouTube, URL: "x"})
	require.NoError(t, err)
	assert.Equal(t, "c2", created.ID)

	require.NoError(t, c.DeleteContent(ctx, "c1"))
	assert.ErrorIs(t, c.DeleteContent(ctx, "missing"), content.ErrNotFound)
}

func TestHealth(t *testing.T) {
	healthy := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	assert.NoError(t, healthy.Health(context.Background()))

	down := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	assert.Error(t, down.Health(context.Background()))
}

func TestStatusErrorSurfacesPlainBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream maintenance"))
	}))

	err := c.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream maintenance")
}
