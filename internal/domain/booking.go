package domain

import "time"

type Meal string

const (
	MealVeg    Meal = "Veg"
	MealNonVeg Meal = "NonVeg"
)

// Passenger is embedded in a Booking and has no identity of its own.
type Passenger struct {
	Name      string
	Gender    string
	Age       int
	SeatLabel string
}

// Booking is a confirmed reservation. JourneyDate and TotalCostCents are
// snapshots taken from the flight at booking time.
type Booking struct {
	Code           string
	FlightID       string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Meal           Meal
	BookedAt       time.Time
	JourneyDate    time.Time
	SeatCount      int
	TotalCostCents int64
	Passengers     []Passenger
}
