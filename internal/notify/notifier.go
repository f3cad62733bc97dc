// Package notify delivers patient notifications when a doctor changes an
// appointment's status. The contract is explicit so the delivery channel can
// be swapped: the default is a logging stand-in, with email and SMS
// implementations for production.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

// Notification carries everything a channel needs to tell a patient about a
// status change.
type Notification struct {
	PatientName  string
	PatientPhone string
	PatientEmail string
	Date         string // YYYY-MM-DD
	Time         string // display label, e.g. "03:00 PM - 04:00 PM"
	Status       string // new lifecycle status
}

// Message renders the patient-facing text shared by all channels.
func (n Notification) Message() string {
	return fmt.Sprintf("Your appointment on %s at %s has been %s.", n.Date, n.Time, strings.ToLower(n.Status))
}

// Notifier sends a status-change notification to the patient.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes the notification to the log instead of sending it.
// It is the default channel in development and demo environments.
type LogNotifier struct {
	logger *logging.Logger
}

// NewLogNotifier creates the logging stand-in notifier.
func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs the would-be notification.
func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	l.logger.Info("notify: status change (log channel)",
		"patient", n.PatientName,
		"phone", n.PatientPhone,
		"date", n.Date,
		"time", n.Time,
		"status", n.Status,
	)
	return nil
}

// Multi fans a notification out to several channels, best effort. A channel
// failure is reported but does not stop the remaining channels.
type Multi struct {
	channels []Notifier
	logger   *logging.Logger
}

// NewMulti creates a fan-out notifier.
func NewMulti(logger *logging.Logger, channels ...Notifier) *Multi {
	if logger == nil {
		logger = logging.Default()
	}
	return &Multi{channels: channels, logger: logger}
}

// Notify delivers to every channel and returns an aggregate error when one or
// more channels failed.
func (m *Multi) Notify(ctx context.Context, n Notification) error {
	var failed int
	for _, ch := range m.channels {
		if err := ch.Notify(ctx, n); err != nil {
			m.logger.Error("notify: channel failed", "error", err, "patient", n.PatientName)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("notify: %d channel(s) failed", failed)
	}
	return nil
}
