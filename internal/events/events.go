// Package events defines the messages the booking workflow publishes and
// the broker-neutral contracts the Kafka and RabbitMQ adapters implement.
package events

import (
	"context"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/google/uuid"
)

const (
	TypeBookingCreated         = "booking_created"
	TypeBookingCancelled       = "booking_cancelled"
	TypeReconciliationRequired = "inventory_reconciliation_required"
)

// Publisher hands a JSON-encoded value to a broker under topic and key.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
	Close() error
}

// Handler processes one raw message body. A returned error stops (Kafka)
// or rejects (RabbitMQ) the message.
type Handler func(ctx context.Context, payload []byte) error

type BookingEvent struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Code           string    `json:"pnr"`
	FlightID       string    `json:"flight_id"`
	Email          string    `json:"email"`
	CustomerName   string    `json:"customer_name"`
	SeatCount      int       `json:"seat_count"`
	JourneyDate    string    `json:"journey_date"`
	TotalCostCents int64     `json:"total_cost_cents"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		ID:             uuid.NewString(),
		Type:           eventType,
		Code:           b.Code,
		FlightID:       b.FlightID,
		Email:          b.CustomerEmail,
		CustomerName:   b.CustomerName,
		SeatCount:      b.SeatCount,
		JourneyDate:    b.JourneyDate.Format(time.DateOnly),
		TotalCostCents: b.TotalCostCents,
		OccurredAt:     at.UTC(),
	}
}

// ReconciliationEvent reports a seat count that no longer matches the
// bookings because a compensating update failed.
type ReconciliationEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Operation  string    `json:"operation"`
	FlightID   string    `json:"flight_id"`
	Code       string    `json:"pnr,omitempty"`
	Seats      int       `json:"seats"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewReconciliationEvent(operation, flightID, code string, seats int, cause error, at time.Time) ReconciliationEvent {
	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	return ReconciliationEvent{
		ID:         uuid.NewString(),
		Type:       TypeReconciliationRequired,
		Operation:  operation,
		FlightID:   flightID,
		Code:       code,
		Seats:      seats,
		Reason:     reason,
		OccurredAt: at.UTC(),
	}
}
