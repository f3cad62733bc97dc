// Package clinicapi is the HTTP client for the remote clinic API. It
// implements the collaborator interfaces the domain packages define, so
// everything above it can be tested against fakes.
package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/drganeshcs/clinic-booking-platform/internal/observability/metrics"
	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

var clientTracer = otel.Tracer("clinic.internal.clinicapi")

const defaultTimeout = 20 * time.Second

// StatusError is a non-2xx answer from the clinic API, carrying the upstream
// message verbatim so callers can pass it on.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("clinicapi: status %d: %s", e.StatusCode, e.Message)
}

// UpstreamMessage returns the API's own error text without the wrapping
// prefixes. HTTP handlers match on this method to show users the upstream
// message alone.
func (e *StatusError) UpstreamMessage() string {
	return e.Message
}

// apiError is the clinic API's error body.
type apiError struct {
	Error string `json:"error"`
}

type tokenKey struct{}

// ContextWithToken attaches a doctor's upstream bearer token to ctx. Requests
// made with that context authenticate as the doctor.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks to the clinic API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.BookingMetrics
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *logging.Logger
	Metrics *metrics.BookingMetrics
}

// New creates a clinic API client.
func New(cfg Config) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		panic("clinicapi: base url required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

// do performs one request against the clinic API. A non-2xx answer becomes a
// *StatusError with the upstream message; out may be nil for empty bodies.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	ctx, span := clientTracer.Start(ctx, "clinicapi."+method+" "+path)
	defer span.End()
	span.SetAttributes(attribute.String("http.method", method), attribute.String("url.path", path))

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("clinicapi: marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("clinicapi: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveUpstreamLatency(method+" "+routePattern(path), time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("clinicapi: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("clinicapi: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		var ae apiError
		msg := strings.TrimSpace(string(respBody))
		if json.Unmarshal(respBody, &ae) == nil && ae.Error != "" {
			msg = ae.Error
		}
		if len(msg) > 300 {
			msg = msg[:300]
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("clinicapi: decode response: %w", err)
	}
	return nil
}

// routePattern collapses path parameters so the latency metric keeps a small
// label set.
func routePattern(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) > 2 {
		return "/" + parts[1]
	}
	return path
}

// Health checks GET /health on the clinic API.
func (c *Client) Health(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil); err != nil {
		return fmt.Errorf("clinicapi: health: %w", err)
	}
	return nil
}

func statusCode(err error) int {
	if se, ok := err.(*StatusError); ok {
		return se.StatusCode
	}
	return 0
}
