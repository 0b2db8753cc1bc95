package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the inventory workflow counters. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Bookings            *prometheus.CounterVec
	Cancellations       *prometheus.CounterVec
	SeatUpdateConflicts *prometheus.CounterVec
	CodeCollisions      prometheus.Counter
	Compensations       *prometheus.CounterVec
	Reconciliations     prometheus.Counter
	AuditDiscrepancies  prometheus.Gauge
	EventsPublished     *prometheus.CounterVec
}

// NewMetrics registers the counters with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Bookings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome",
		}, []string{"result"}),
		Cancellations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancellations_total",
			Help:      "Cancellation attempts by outcome",
		}, []string{"result"}),
		SeatUpdateConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seat_update_conflicts_total",
			Help:      "Conditional seat updates that lost a race",
		}, []string{"operation"}),
		CodeCollisions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_code_collisions_total",
			Help:      "Reservation codes rejected as duplicates on insert",
		}),
		Compensations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compensations_total",
			Help:      "Compensating seat adjustments by outcome",
		}, []string{"outcome"}),
		Reconciliations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliation_flags_total",
			Help:      "Inventory mismatches flagged for manual reconciliation",
		}),
		AuditDiscrepancies: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_audit_discrepancies",
			Help:      "Flights whose consumed capacity disagrees with live bookings at the last audit",
		}),
		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Events handed to the broker by outcome",
		}, []string{"type", "outcome"}),
	}
}

func (m *Metrics) BookingResult(result string) {
	if m == nil {
		return
	}
	m.Bookings.WithLabelValues(result).Inc()
}

func (m *Metrics) CancellationResult(result string) {
	if m == nil {
		return
	}
	m.Cancellations.WithLabelValues(result).Inc()
}

func (m *Metrics) SeatConflict(operation string) {
	if m == nil {
		return
	}
	m.SeatUpdateConflicts.WithLabelValues(operation).Inc()
}

func (m *Metrics) CodeCollision() {
	if m == nil {
		return
	}
	m.CodeCollisions.Inc()
}

func (m *Metrics) Compensation(outcome string) {
	if m == nil {
		return
	}
	m.Compensations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ReconciliationFlagged() {
	if m == nil {
		return
	}
	m.Reconciliations.Inc()
}

func (m *Metrics) AuditResult(discrepancies int) {
	if m == nil {
		return
	}
	m.AuditDiscrepancies.Set(float64(discrepancies))
}

func (m *Metrics) EventPublished(eventType string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.EventsPublished.WithLabelValues(eventType, outcome).Inc()
}
