package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFlight() Flight {
	return Flight{
		AirlineName:   "IndiGo",
		Origin:        "DEL",
		Destination:   "BOM",
		ScheduleDate:  time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
		DepartureTime: NewTimeOfDay(10, 0, 0),
		ArrivalTime:   NewTimeOfDay(12, 15, 0),
		PriceCents:    450000,
		TotalSeats:    180,
	}
}

func TestFlight_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(f *Flight)
		expectedErr string
	}{
		{name: "valid", mutate: func(f *Flight) {}},
		{name: "free flight", mutate: func(f *Flight) { f.PriceCents = 0 }},
		{name: "missing airline", mutate: func(f *Flight) { f.AirlineName = " " }, expectedErr: "airline_name"},
		{name: "same route", mutate: func(f *Flight) { f.Destination = "del" }, expectedErr: "cannot be the same"},
		{name: "missing destination", mutate: func(f *Flight) { f.Destination = "" }, expectedErr: "origin and destination"},
		{name: "no schedule date", mutate: func(f *Flight) { f.ScheduleDate = time.Time{} }, expectedErr: "schedule_date"},
		{name: "arrival equals departure", mutate: func(f *Flight) { f.ArrivalTime = f.DepartureTime }, expectedErr: "arrival time must be after"},
		{name: "arrival before departure", mutate: func(f *Flight) { f.ArrivalTime = NewTimeOfDay(9, 0, 0) }, expectedErr: "arrival time must be after"},
		{name: "time out of range", mutate: func(f *Flight) { f.ArrivalTime = TimeOfDay(secondsPerDay) }, expectedErr: "times of day"},
		{name: "negative price", mutate: func(f *Flight) { f.PriceCents = -1 }, expectedErr: "price cannot be negative"},
		{name: "zero seats", mutate: func(f *Flight) { f.TotalSeats = 0 }, expectedErr: "at least 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFlight()
			tc.mutate(&f)
			err := f.Validate()
			if tc.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}

func TestFlight_Departure(t *testing.T) {
	f := validFlight()
	assert.Equal(t, time.Date(2026, 11, 20, 10, 0, 0, 0, time.UTC), f.Departure())
}

func TestTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("07:45")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(7, 45, 0), tod)
	assert.Equal(t, "07:45:00", tod.String())

	tod, err = ParseTimeOfDay("23:59:59")
	require.NoError(t, err)
	assert.True(t, tod.Valid())
	assert.Equal(t, 86399*time.Second, tod.Duration())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)

	payload, err := json.Marshal(struct {
		At TimeOfDay `json:"at"`
	}{At: NewTimeOfDay(6, 5, 0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"06:05:00"}`, string(payload))

	var decoded struct {
		At TimeOfDay `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"18:30"}`), &decoded))
	assert.Equal(t, NewTimeOfDay(18, 30, 0), decoded.At)
}

func TestTimeOfDay_OnKeepsLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, loc)
	at := NewTimeOfDay(9, 30, 0).On(date)
	assert.Equal(t, loc, at.Location())
	assert.Equal(t, 9, at.Hour())
	assert.Equal(t, 30, at.Minute())
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("connection reset")
	testCases := []struct {
		name  string
		err   error
		check func(error) bool
		text  string
	}{
		{name: "not found", err: NotFoundError{Resource: "flight"}, check: IsNotFound, text: "flight not found"},
		{name: "validation", err: ValidationError{Field: "passengers", Msg: "at least one passenger required"}, check: IsValidation, text: "passengers: at least one passenger required"},
		{name: "unavailable", err: UnavailableError{Requested: 3, Available: 2}, check: IsUnavailable, text: "only 2 available"},
		{name: "conflict", err: ConflictError{Resource: "flight", Msg: "lost the race"}, check: IsConflict, text: "flight conflict: lost the race"},
		{name: "cancellation denied", err: CancellationDeniedError{Deadline: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}, check: IsCancellationDenied, text: "2026-01-01T10:00:00Z"},
		{name: "internal", err: InternalError{Msg: "save booking", Err: cause}, check: IsInternal, text: "save booking: connection reset"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("book: %w", tc.err)
			assert.True(t, tc.check(wrapped))
			assert.Contains(t, tc.err.Error(), tc.text)
		})
	}

	assert.ErrorIs(t, InternalError{Err: cause}, cause)
	assert.False(t, IsNotFound(cause))
}
