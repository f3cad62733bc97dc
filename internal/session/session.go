// Package session authenticates doctors against the clinic API and manages
// the resulting browser sessions. The gateway never sees a password database:
// credentials are forwarded upstream, and only a successful answer mints a
// local session token.
package session

import (
	"context"
	"errors"
	"time"
)

// Login types accepted by the doctor portal.
const (
	LoginTypePassword = "password"
	LoginTypePIN      = "pin"
)

// Credentials is the doctor login form. Exactly one of Password or PIN is
// used, selected by LoginType.
type Credentials struct {
	LoginType string `json:"loginType"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	PIN       string `json:"pin,omitempty"`
}

// User is the authenticated account as reported by the clinic API.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsDoctor reports whether the user may enter the doctor portal. Admins get
// doctor access too.
func (u User) IsDoctor() bool {
	return u.Role == "doctor" || u.Role == "admin"
}

// Session is a live doctor session held by the gateway.
type Session struct {
	ID            string    `json:"id"`
	User          User      `json:"user"`
	UpstreamToken string    `json:"upstream_token"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// UpstreamAuth is what the clinic API returns for a successful login.
type UpstreamAuth struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Authenticator verifies doctor credentials against the clinic API.
type Authenticator interface {
	DoctorLogin(ctx context.Context, creds Credentials) (*UpstreamAuth, error)
}

// Store persists sessions for their lifetime.
type Store interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

var (
	// ErrInvalidCredentials means the clinic API rejected the login.
	ErrInvalidCredentials = errors.New("session: invalid credentials")

	// ErrNotDoctor means the account authenticated but has no portal access.
	ErrNotDoctor = errors.New("session: account is not a doctor")

	// ErrSessionNotFound means the token is unknown, expired, or logged out.
	ErrSessionNotFound = errors.New("session: session not found")
)
