package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

var sessionTracer = otel.Tracer("clinic.internal.session")

// LoginResult is returned to the browser after a login attempt. On failure
// Success is false, Error carries the upstream message, and nothing is
// stored.
type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Gate is the session/role gate in front of the doctor portal. It forwards
// credentials upstream, stores a session on success, and hands the browser an
// HMAC-signed token whose jti points back at the stored session.
type Gate struct {
	auth   Authenticator
	store  Store
	secret []byte
	ttl    time.Duration
	logger *logging.Logger
	now    func() time.Time
}

// NewGate constructs a gate.
func NewGate(auth Authenticator, store Store, secret string, ttl time.Duration, logger *logging.Logger) *Gate {
	if auth == nil {
		panic("session: authenticator required")
	}
	if store == nil {
		panic("session: store required")
	}
	if secret == "" {
		panic("session: secret required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Gate{
		auth:   auth,
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Login attempts a doctor login. A rejected credential is not an error: the
// result carries Success=false and the upstream message, and no session is
// created.
func (g *Gate) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	ctx, span := sessionTracer.Start(ctx, "session.login")
	defer span.End()
	span.SetAttributes(attribute.String("clinic.login_type", creds.LoginType))

	upstream, err := g.auth.DoctorLogin(ctx, creds)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			g.logger.Warn("doctor login rejected", "login_type", creds.LoginType)
			return &LoginResult{Success: false, Error: err.Error()}, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("session: login: %w", err)
	}

	if !upstream.User.IsDoctor() {
		g.logger.Warn("login without doctor role", "role", upstream.User.Role)
		return &LoginResult{Success: false, Error: ErrNotDoctor.Error()}, nil
	}

	now := g.now()
	sess := Session{
		ID:            uuid.NewString(),
		User:          upstream.User,
		UpstreamToken: upstream.Token,
		CreatedAt:     now,
		ExpiresAt:     now.Add(g.ttl),
	}
	if err := g.store.Save(ctx, sess, g.ttl); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("session: save: %w", err)
	}

	token, err := g.mint(sess, now)
	if err != nil {
		return nil, fmt.Errorf("session: mint token: %w", err)
	}

	user := upstream.User
	g.logger.Info("doctor logged in", "user_id", user.ID, "role", user.Role)
	return &LoginResult{Success: true, Token: token, User: &user}, nil
}

// Authenticate resolves a bearer token to its live session.
func (g *Gate) Authenticate(ctx context.Context, tokenString string) (*Session, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid || claims.ID == "" {
		return nil, ErrSessionNotFound
	}
	return g.store.Get(ctx, claims.ID)
}

// Logout discards the session behind the token. Unknown tokens are ignored.
func (g *Gate) Logout(ctx context.Context, tokenString string) error {
	sess, err := g.Authenticate(ctx, tokenString)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}
	g.logger.Info("doctor logged out", "user_id", sess.User.ID)
	return g.store.Delete(ctx, sess.ID)
}

func (g *Gate) mint(sess Session, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sess.User.ID,
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}
