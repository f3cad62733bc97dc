package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/drganeshcs/clinic-booking-platform/internal/clinicapi"
	"github.com/drganeshcs/clinic-booking-platform/internal/session"
)

type contextKey string

const sessionKey contextKey = "doctorSession"

// DoctorAuth resolves the bearer token to a live session through the gate
// and requires a doctor role. The session's upstream token is attached to
// the request context so clinic API calls authenticate as the doctor.
func DoctorAuth(gate *session.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			sess, err := gate.Authenticate(r.Context(), token)
			if err != nil {
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}
			if !sess.User.IsDoctor() {
				http.Error(w, "doctor access required", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			ctx = clinicapi.ContextWithToken(ctx, sess.UpstreamToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the authenticated doctor session, if any.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok
}
