package clinicapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/drganeshcs/clinic-booking-platform/internal/session"
)

// DoctorLogin forwards doctor credentials to POST /auth/doctor-login. A 401
// or 403 becomes session.ErrInvalidCredentials so the gate can answer the
// browser without leaking transport details.
func (c *Client) DoctorLogin(ctx context.Context, creds session.Credentials) (*session.UpstreamAuth, error) {
	var out session.UpstreamAuth
	if err := c.do(ctx, http.MethodPost, "/auth/doctor-login", creds, &out); err != nil {
		switch statusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("%w: %s", session.ErrInvalidCredentials, err.(*StatusError).Message)
		}
		return nil, fmt.Errorf("clinicapi: doctor login: %w", err)
	}
	if out.Token == "" {
		return nil, fmt.Errorf("clinicapi: doctor login: empty token")
	}
	return &out, nil
}
