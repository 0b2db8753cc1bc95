package booking

import (
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
)

const DefaultCancellationWindow = 24 * time.Hour

// CancellationPolicy allows a cancellation up to and including Window
// before departure. Journey dates are read as calendar dates in Location.
type CancellationPolicy struct {
	Window   time.Duration
	Location *time.Location
}

func NewCancellationPolicy(window time.Duration, loc *time.Location) CancellationPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return CancellationPolicy{Window: window, Location: loc}
}

// Deadline is the last instant at which cancellation is still allowed.
func (p CancellationPolicy) Deadline(journeyDate time.Time, departure domain.TimeOfDay) time.Time {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := journeyDate.Date()
	return departure.On(time.Date(y, m, d, 0, 0, 0, 0, loc)).Add(-p.Window)
}

func (p CancellationPolicy) Allowed(now, journeyDate time.Time, departure domain.TimeOfDay) bool {
	return !now.After(p.Deadline(journeyDate, departure))
}
