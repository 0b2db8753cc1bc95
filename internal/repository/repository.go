// Package repository holds the flight and booking store contracts and
// their Postgres, MongoDB and in-memory implementations.
//
// All implementations report failures through the sentinel errors below
// so the booking workflow can tell a lost race (ErrConflict) from a
// missing record (ErrNotFound) or a reservation-code collision
// (ErrDuplicateKey) without knowing which backend is in use.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned by a conditional update whose condition no
	// longer holds at write time.
	ErrConflict = errors.New("conflict")

	// ErrDuplicateKey is returned when a booking is saved under a
	// reservation code that is already taken.
	ErrDuplicateKey = errors.New("duplicate key")
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id string) (*domain.Flight, error)

	// ConditionalUpdateAvailableSeats atomically adds delta to the flight's
	// available seats, but only if the stored count is at least minimum and
	// the result stays within [0, total seats]. It returns the updated
	// flight, ErrConflict when the condition fails, or ErrNotFound.
	ConditionalUpdateAvailableSeats(ctx context.Context, id string, minimum, delta int) (*domain.Flight, error)

	// Search returns flights on the route and date with at least one free seat.
	Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
}

type BookingRepository interface {
	// Save inserts a new booking; ErrDuplicateKey if the code is taken.
	Save(ctx context.Context, booking *domain.Booking) error
	FindByCode(ctx context.Context, code string) (*domain.Booking, error)

	// FindByCustomerEmail orders bookings by booking time, newest first.
	FindByCustomerEmail(ctx context.Context, email string) ([]domain.Booking, error)

	// Delete removes the booking; ErrNotFound if it is already gone.
	Delete(ctx context.Context, booking *domain.Booking) error

	// SeatsByFlight sums the seat counts of live bookings per flight id.
	SeatsByFlight(ctx context.Context) (map[string]int, error)
}

// seatBounds returns the lowest stored seat count that satisfies both
// the caller's minimum and a non-negative result.
func seatBounds(minimum, delta int) int {
	lower := minimum
	if -delta > lower {
		lower = -delta
	}
	if lower < 0 {
		lower = 0
	}
	return lower
}

// scheduleDay normalizes a date to UTC midnight so dates compare by day
// regardless of the location they were built in.
func scheduleDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
