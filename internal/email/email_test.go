package email

import (
	"context"
	"testing"

	"github.com/Domenick1991/flightinventory/internal/events"
	"github.com/Domenick1991/flightinventory/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSender_Handle(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewSender(logger.NewWithCore(core))

	err := s.Handle(context.Background(), []byte(`{"type":"booking_created","pnr":"FLABCDEF12","email":"a@example.com","journey_date":"2026-12-01"}`))
	require.NoError(t, err)

	entries := logs.FilterMessage("send email").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "a@example.com", entries[0].ContextMap()["to"])
	assert.Equal(t, "Booking confirmed: FLABCDEF12 on 2026-12-01", entries[0].ContextMap()["subject"])
}

func TestSender_HandleErrors(t *testing.T) {
	s := NewSender(logger.NewNop())

	assert.ErrorContains(t, s.Handle(context.Background(), []byte("{")), "decode booking event")
	assert.ErrorContains(t, s.Handle(context.Background(), []byte(`{"id":"e1"}`)), "no recipient")
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Booking cancelled: X", Subject(events.BookingEvent{Type: events.TypeBookingCancelled, Code: "X"}))
	assert.Equal(t, "Booking update: X", Subject(events.BookingEvent{Type: "other", Code: "X"}))
}
