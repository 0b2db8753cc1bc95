package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics("test", prometheus.NewRegistry())

	m.BookingResult("ok")
	m.BookingResult("ok")
	m.BookingResult("unavailable")
	m.SeatConflict("reserve")
	m.CodeCollision()
	m.Compensation("failed")
	m.ReconciliationFlagged()
	m.AuditResult(3)
	m.EventPublished("booking_created", nil)
	m.EventPublished("booking_created", errors.New("broker down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Bookings.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Bookings.WithLabelValues("unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SeatUpdateConflicts.WithLabelValues("reserve")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CodeCollisions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Compensations.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reconciliations))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.AuditDiscrepancies))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("booking_created", "error")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.BookingResult("ok")
		m.CancellationResult("ok")
		m.SeatConflict("release")
		m.CodeCollision()
		m.Compensation("ok")
		m.ReconciliationFlagged()
		m.AuditResult(0)
		m.EventPublished("x", nil)
	})
}
