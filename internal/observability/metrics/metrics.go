package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking and lifecycle flows.
type BookingMetrics struct {
	slotComputations  *prometheus.CounterVec
	appointmentsTotal *prometheus.CounterVec
	statusTransitions *prometheus.CounterVec
	notifyTotal       *prometheus.CounterVec
	upstreamLatency   *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		slotComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "slots",
			Name:      "computations_total",
			Help:      "Total slot availability computations by occupancy source",
		}, []string{"source"}),
		appointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "appointments_total",
			Help:      "Total appointment creation attempts",
		}, []string{"outcome"}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "appointments",
			Name:      "status_transitions_total",
			Help:      "Total appointment status transitions by new status",
		}, []string{"status", "outcome"}),
		notifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "Total patient notifications by outcome",
		}, []string{"outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "upstream",
			Name:      "request_latency_seconds",
			Help:      "Latency of clinic API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotComputations, m.appointmentsTotal, m.statusTransitions, m.notifyTotal, m.upstreamLatency)
	return m
}

func (m *BookingMetrics) ObserveSlotComputation(source string) {
	if m == nil {
		return
	}
	m.slotComputations.WithLabelValues(source).Inc()
}

func (m *BookingMetrics) ObserveAppointmentCreated(outcome string) {
	if m == nil {
		return
	}
	m.appointmentsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveStatusTransition(status, outcome string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(status, outcome).Inc()
}

func (m *BookingMetrics) ObserveNotification(outcome string) {
	if m == nil {
		return
	}
	m.notifyTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveUpstreamLatency(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(operation).Observe(seconds)
}
