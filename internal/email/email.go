package email

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/flightinventory/internal/events"
	"github.com/Domenick1991/flightinventory/internal/logger"
)

// Sender renders booking notifications. Delivery is a structured log line
// until an SMTP relay is configured.
type Sender struct {
	log logger.Logger
}

func NewSender(log logger.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event events.BookingEvent) error {
	if event.Email == "" {
		return fmt.Errorf("booking event %s has no recipient", event.ID)
	}
	s.log.Info("send email",
		"to", event.Email,
		"subject", Subject(event),
		"pnr", event.Code,
		"flight_id", event.FlightID,
		"seats", event.SeatCount,
	)
	return nil
}

// Handle decodes a booking event from a broker message and sends it.
func (s *Sender) Handle(ctx context.Context, payload []byte) error {
	var event events.BookingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("decode booking event: %w", err)
	}
	return s.Send(ctx, event)
}

func Subject(event events.BookingEvent) string {
	switch event.Type {
	case events.TypeBookingCreated:
		return fmt.Sprintf("Booking confirmed: %s on %s", event.Code, event.JourneyDate)
	case events.TypeBookingCancelled:
		return fmt.Sprintf("Booking cancelled: %s", event.Code)
	default:
		return fmt.Sprintf("Booking update: %s", event.Code)
	}
}

var _ events.Handler = (&Sender{}).Handle
