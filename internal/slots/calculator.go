// Package slots computes the bookable time slots offered to patients for a
// given hospital and date. Occupancy comes from the clinic API when it has
// data; otherwise an explicitly-labeled simulated generator stands in.
package slots

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/drganeshcs/clinic-booking-platform/internal/hospitals"
	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

var slotsTracer = otel.Tracer("clinic.internal.slots")

// DefaultMaxAppointments is the per-window capacity assumed when the clinic
// API has no occupancy data.
const DefaultMaxAppointments = 20

// DateFormat is the wire format for booking dates.
const DateFormat = "2006-01-02"

// Slot is a bookable (date, window) unit. Derived, never stored.
type Slot struct {
	Time                string `json:"time_slot"`  // window start, "15:00"
	Display             string `json:"display"`    // "03:00 PM - 04:00 PM"
	EndTime             string `json:"end_time"`   // "16:00"
	Available           bool   `json:"available"`
	CurrentAppointments int    `json:"current_appointments"`
	MaxAppointments     int    `json:"max_appointments"`
	RemainingSlots      int    `json:"remaining_slots"`
}

// Source tags where a computed slot set's occupancy came from. Live and
// simulated data are never mixed within one set.
type Source string

const (
	// SourceLive means occupancy was read from the clinic API.
	SourceLive Source = "live"
	// SourceSimulated means occupancy was generated locally because the API
	// had no data (or failed). Stand-in behavior, not real capacity.
	SourceSimulated Source = "simulated"
	// SourceClosed means no slots exist for the date (closure day, past
	// date, or a day outside the hospital's visiting schedule).
	SourceClosed Source = "closed"
)

// Occupancy is the per-window booking count reported by the clinic API.
type Occupancy struct {
	StartTime           string `json:"start_time"`
	CurrentAppointments int    `json:"current_appointments"`
	MaxAppointments     int    `json:"max_appointments"`
}

// OccupancyFetcher reads live occupancy from the clinic API.
type OccupancyFetcher interface {
	GetSlots(ctx context.Context, hospitalID, date string) ([]Occupancy, error)
}

// Calculator derives the offered slot list for a hospital and date.
type Calculator struct {
	fetcher OccupancyFetcher
	logger  *logging.Logger
	now     func() time.Time
	intn    func(n int) int
}

// CalculatorConfig configures a Calculator. Now and Intn are test hooks; they
// default to the wall clock and math/rand.
type CalculatorConfig struct {
	Fetcher OccupancyFetcher
	Logger  *logging.Logger
	Now     func() time.Time
	Intn    func(n int) int
}

// NewCalculator builds a Calculator.
func NewCalculator(cfg CalculatorConfig) *Calculator {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	intn := cfg.Intn
	if intn == nil {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		intn = rnd.Intn
	}
	return &Calculator{fetcher: cfg.Fetcher, logger: logger, now: now, intn: intn}
}

// Compute returns the slots offered for the hospital on the given date, in
// the hospital's configured window order, plus the occupancy source. It never
// fails: a live fetch error degrades to simulated occupancy.
func (c *Calculator) Compute(ctx context.Context, h hospitals.Hospital, date time.Time) ([]Slot, Source) {
	ctx, span := slotsTracer.Start(ctx, "slots.compute")
	defer span.End()
	span.SetAttributes(
		attribute.String("clinic.hospital_id", h.ID),
		attribute.String("clinic.date", date.Format(DateFormat)),
	)

	now := c.now()
	if beforeDay(date, now) {
		return []Slot{}, SourceClosed
	}
	// Friday is a clinic-wide closure day regardless of per-hospital config.
	if date.Weekday() == time.Friday {
		return []Slot{}, SourceClosed
	}
	if !h.VisitsOn(date.Weekday()) {
		return []Slot{}, SourceClosed
	}

	occ, source := c.occupancyFor(ctx, h, date)
	span.SetAttributes(attribute.String("clinic.slot_source", string(source)))

	byStart := make(map[string]Occupancy, len(occ))
	for _, o := range occ {
		byStart[o.StartTime] = o
	}

	out := make([]Slot, 0, len(h.Windows))
	for _, w := range h.Windows {
		o := byStart[w.Start]
		remaining := o.MaxAppointments - o.CurrentAppointments
		s := Slot{
			Time:                w.Start,
			Display:             w.Display,
			EndTime:             w.End,
			CurrentAppointments: o.CurrentAppointments,
			MaxAppointments:     o.MaxAppointments,
			RemainingSlots:      remaining,
			Available:           remaining > 0,
		}
		if sameDay(date, now) && !startsAfter(w.Start, date, now) {
			s.Available = false
		}
		out = append(out, s)
	}
	return out, source
}

// occupancyFor fetches live occupancy, falling back to the simulated
// generator when the API fails or has no complete data for the date. The two
// sources are never mixed within one slot set.
func (c *Calculator) occupancyFor(ctx context.Context, h hospitals.Hospital, date time.Time) ([]Occupancy, Source) {
	if c.fetcher != nil {
		occ, err := c.fetcher.GetSlots(ctx, h.ID, date.Format(DateFormat))
		if err != nil {
			c.logger.Warn("slots: live occupancy fetch failed, using simulated data",
				"hospital_id", h.ID, "date", date.Format(DateFormat), "error", err)
		} else if covered(occ, h.Windows) {
			return occ, SourceLive
		} else if len(occ) > 0 {
			c.logger.Warn("slots: live occupancy incomplete, using simulated data",
				"hospital_id", h.ID, "date", date.Format(DateFormat), "windows", len(h.Windows), "entries", len(occ))
		}
	}
	return c.SimulateOccupancy(h), SourceSimulated
}

// SimulateOccupancy generates demo occupancy for every window of the
// hospital: capacity 20, current bookings uniform in [0, 20).
func (c *Calculator) SimulateOccupancy(h hospitals.Hospital) []Occupancy {
	out := make([]Occupancy, 0, len(h.Windows))
	for _, w := range h.Windows {
		out = append(out, Occupancy{
			StartTime:           w.Start,
			CurrentAppointments: c.intn(DefaultMaxAppointments),
			MaxAppointments:     DefaultMaxAppointments,
		})
	}
	return out
}

// covered reports whether the live data has an entry for every window.
func covered(occ []Occupancy, windows []hospitals.Window) bool {
	if len(occ) == 0 {
		return false
	}
	have := make(map[string]bool, len(occ))
	for _, o := range occ {
		have[o.StartTime] = true
	}
	for _, w := range windows {
		if !have[w.Start] {
			return false
		}
	}
	return true
}

func beforeDay(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// startsAfter reports whether the "15:04" window start on the given date is
// strictly after now.
func startsAfter(start string, date, now time.Time) bool {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	slotStart := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	return slotStart.After(now)
}

// ErrUnknownHospital is returned by the HTTP layer for an unrecognized id.
var ErrUnknownHospital = errors.New("slots: unknown hospital")
