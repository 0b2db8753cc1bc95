package domain

import (
	"strings"
	"time"
)

// Flight is a scheduled flight together with its seat inventory.
// AvailableSeats is only mutated through the conditional seat update
// exposed by the flight repository.
type Flight struct {
	ID             string
	AirlineName    string
	Origin         string
	Destination    string
	ScheduleDate   time.Time
	DepartureTime  TimeOfDay
	ArrivalTime    TimeOfDay
	PriceCents     int64
	TotalSeats     int
	AvailableSeats int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Departure is the departure instant on the schedule date.
func (f Flight) Departure() time.Time {
	return f.DepartureTime.On(f.ScheduleDate)
}

// Validate checks the rules that gate inventory creation.
func (f Flight) Validate() error {
	if strings.TrimSpace(f.AirlineName) == "" {
		return ValidationError{Field: "airline_name", Msg: "is required"}
	}
	if strings.TrimSpace(f.Origin) == "" || strings.TrimSpace(f.Destination) == "" {
		return ValidationError{Field: "route", Msg: "origin and destination are required"}
	}
	if strings.EqualFold(strings.TrimSpace(f.Origin), strings.TrimSpace(f.Destination)) {
		return ValidationError{Field: "route", Msg: "departure and arrival places cannot be the same"}
	}
	if f.ScheduleDate.IsZero() {
		return ValidationError{Field: "schedule_date", Msg: "is required"}
	}
	if !f.DepartureTime.Valid() || !f.ArrivalTime.Valid() {
		return ValidationError{Field: "times", Msg: "departure and arrival must be times of day"}
	}
	if f.ArrivalTime <= f.DepartureTime {
		return ValidationError{Field: "arrival_time", Msg: "arrival time must be after the departure time"}
	}
	if f.PriceCents < 0 {
		return ValidationError{Field: "price", Msg: "price cannot be negative"}
	}
	if f.TotalSeats < 1 {
		return ValidationError{Field: "total_seats", Msg: "total seats must be at least 1"}
	}
	return nil
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
