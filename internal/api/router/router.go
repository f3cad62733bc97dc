// Package router wires every handler into the gateway's chi router.
package router

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/drganeshcs/clinic-booking-platform/internal/appointments"
	"github.com/drganeshcs/clinic-booking-platform/internal/booking"
	"github.com/drganeshcs/clinic-booking-platform/internal/content"
	httpmiddleware "github.com/drganeshcs/clinic-booking-platform/internal/http/middleware"
	"github.com/drganeshcs/clinic-booking-platform/internal/marketing"
	"github.com/drganeshcs/clinic-booking-platform/internal/session"
	"github.com/drganeshcs/clinic-booking-platform/internal/slots"
	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

// HealthChecker reports whether the clinic API is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Config holds router configuration.
type Config struct {
	Logger              *logging.Logger
	SlotsHandler        *slots.Handler
	BookingHandler      *booking.Handler
	AppointmentsHandler *appointments.Handler
	SessionHandler      *session.Handler
	ContentHandler      *content.Handler
	MarketingHandler    *marketing.Handler
	Gate                *session.Gate
	Upstream            HealthChecker
	MetricsHandler      http.Handler
	LoginLimiter        *httpmiddleware.RateLimiter
	CORSAllowedOrigins  []string
}

// New creates the chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints.
	r.Group(func(public chi.Router) {
		public.Get("/health", healthHandler(cfg.Upstream))
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		public.Get("/hospitals", cfg.SlotsHandler.ListHospitals)
		public.Get("/slots/{hospitalID}/{date}", cfg.SlotsHandler.GetSlots)

		public.Post("/appointments", cfg.BookingHandler.Create)
		public.Get("/appointments/track/{reference}", cfg.BookingHandler.Track)

		public.Get("/content", cfg.ContentHandler.ListPublic)

		if cfg.MarketingHandler != nil {
			public.Post("/contact", cfg.MarketingHandler.SubmitContact)
			public.Get("/reviews", cfg.MarketingHandler.ListReviews)
		}

		login := http.Handler(http.HandlerFunc(cfg.SessionHandler.Login))
		if cfg.LoginLimiter != nil {
			login = cfg.LoginLimiter.Limit(login)
		}
		public.Method(http.MethodPost, "/auth/doctor-login", login)
	})

	// Doctor portal endpoints.
	r.Group(func(doctor chi.Router) {
		doctor.Use(httpmiddleware.DoctorAuth(cfg.Gate))

		doctor.Post("/auth/logout", cfg.SessionHandler.Logout)

		doctor.Route("/doctor", func(d chi.Router) {
			d.Get("/appointments", cfg.AppointmentsHandler.List)
			d.Get("/appointments/summary", cfg.AppointmentsHandler.Summary)
			d.Put("/appointments/{id}/status", cfg.AppointmentsHandler.SetStatus)
			d.Put("/appointments/{id}/notes", cfg.AppointmentsHandler.AddNotes)

			d.Get("/content", cfg.ContentHandler.ListAll)
			d.Post("/content", cfg.ContentHandler.Create)
			d.Put("/content/{id}", cfg.ContentHandler.Update)
			d.Delete("/content/{id}", cfg.ContentHandler.Delete)
		})
	})

	return r
}

// healthHandler answers with the gateway's own status and whether the clinic
// API is reachable.
func healthHandler(upstream HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]string{"status": "ok", "upstream": "ok"}
		code := http.StatusOK
		if upstream != nil {
			if err := upstream.Health(r.Context()); err != nil {
				resp["upstream"] = "unreachable"
				code = http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(resp)
	}
}
