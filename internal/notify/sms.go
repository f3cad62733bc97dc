package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

var smsTracer = otel.Tracer("clinic.internal.notify.sms")

// TwilioSMSNotifier delivers status-change notifications as SMS through
// Twilio's REST API. Delivery is single-shot: a failed send is surfaced to the
// caller, never retried here.
type TwilioSMSNotifier struct {
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewTwilioSMSNotifier builds an SMS channel with sane defaults.
func NewTwilioSMSNotifier(accountSID, authToken, from string, logger *logging.Logger) *TwilioSMSNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &TwilioSMSNotifier{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Notify sends the status-change SMS to the patient's phone.
func (s *TwilioSMSNotifier) Notify(ctx context.Context, n Notification) error {
	if s.accountSID == "" || s.authToken == "" {
		return errors.New("notify: twilio credentials missing")
	}
	if n.PatientPhone == "" {
		return errors.New("notify: patient phone required")
	}

	ctx, span := smsTracer.Start(ctx, "notify.sms.send")
	defer span.End()
	span.SetAttributes(attribute.String("clinic.notify.status", n.Status))

	payload := url.Values{}
	payload.Set("To", n.PatientPhone)
	payload.Set("From", s.from)
	payload.Set("Body", n.Message())

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("notify: create sms request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("notify: sms request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("notify: twilio send failed: %s", formatTwilioError(resp.StatusCode, body))
		span.RecordError(err)
		return err
	}

	s.logger.Info("notify: status sms sent", "to", n.PatientPhone, "status", n.Status)
	return nil
}

type twilioAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func formatTwilioError(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return fmt.Sprintf("status %d", status)
	}
	var parsed twilioAPIError
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil && parsed.Message != "" {
		return fmt.Sprintf("status %d: %s", status, parsed.Message)
	}
	if len(trimmed) > 200 {
		trimmed = trimmed[:200]
	}
	return fmt.Sprintf("status %d: %s", status, trimmed)
}
