package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlight(total, available int) *domain.Flight {
	return &domain.Flight{
		AirlineName:    "Indigo",
		Origin:         "Delhi",
		Destination:    "Mumbai",
		ScheduleDate:   time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		DepartureTime:  domain.NewTimeOfDay(10, 0, 0),
		ArrivalTime:    domain.NewTimeOfDay(12, 0, 0),
		PriceCents:     500000,
		TotalSeats:     total,
		AvailableSeats: available,
	}
}

func TestMemoryFlightRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFlightRepository()

	f := newTestFlight(10, 10)
	require.NoError(t, repo.Create(ctx, f))
	assert.NotEmpty(t, f.ID)
	assert.False(t, f.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Indigo", got.AirlineName)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Create(ctx, f), ErrDuplicateKey)
}

func TestMemoryFlightRepository_ConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFlightRepository()
	f := newTestFlight(10, 3)
	require.NoError(t, repo.Create(ctx, f))

	tests := []struct {
		name      string
		minimum   int
		delta     int
		wantErr   error
		wantSeats int
	}{
		{name: "decrement within bounds", minimum: 2, delta: -2, wantSeats: 1},
		{name: "decrement below minimum", minimum: 2, delta: -2, wantErr: ErrConflict, wantSeats: 1},
		{name: "negative result refused", minimum: 0, delta: -5, wantErr: ErrConflict, wantSeats: 1},
		{name: "release", minimum: 0, delta: 4, wantSeats: 5},
		{name: "release above total refused", minimum: 0, delta: 6, wantErr: ErrConflict, wantSeats: 5},
		{name: "release up to total", minimum: 0, delta: 5, wantSeats: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := repo.ConditionalUpdateAvailableSeats(ctx, f.ID, tt.minimum, tt.delta)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantSeats, updated.AvailableSeats)
			}
			stored, err := repo.GetByID(ctx, f.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSeats, stored.AvailableSeats)
		})
	}

	_, err := repo.ConditionalUpdateAvailableSeats(ctx, "missing", 1, -1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryFlightRepository_ConcurrentDecrements(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFlightRepository()
	f := newTestFlight(20, 7)
	require.NoError(t, repo.Create(ctx, f))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.ConditionalUpdateAvailableSeats(ctx, f.ID, 1, -1); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 7, success)
	stored, _ := repo.GetByID(ctx, f.ID)
	assert.Equal(t, 0, stored.AvailableSeats)
}

func TestMemoryFlightRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFlightRepository()

	late := newTestFlight(10, 10)
	late.DepartureTime = domain.NewTimeOfDay(18, 0, 0)
	late.ArrivalTime = domain.NewTimeOfDay(20, 0, 0)
	early := newTestFlight(10, 10)
	full := newTestFlight(10, 0)
	otherDay := newTestFlight(10, 10)
	otherDay.ScheduleDate = otherDay.ScheduleDate.AddDate(0, 0, 1)
	for _, f := range []*domain.Flight{late, early, full, otherDay} {
		require.NoError(t, repo.Create(ctx, f))
	}

	found, err := repo.Search(ctx, "delhi", "MUMBAI", time.Date(2026, 12, 1, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, early.ID, found[0].ID)
	assert.Equal(t, late.ID, found[1].ID)

	found, err = repo.Search(ctx, "Mumbai", "Delhi", early.ScheduleDate)
	require.NoError(t, err)
	assert.Empty(t, found)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMemoryBookingRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepository()
	base := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)

	older := &domain.Booking{Code: "FLAAAA1111", FlightID: "f1", CustomerEmail: "a@example.com", BookedAt: base, SeatCount: 2,
		Passengers: []domain.Passenger{{Name: "A", Age: 30}, {Name: "B", Age: 31}}}
	newer := &domain.Booking{Code: "FLBBBB2222", FlightID: "f1", CustomerEmail: "a@example.com", BookedAt: base.Add(time.Hour), SeatCount: 1}
	other := &domain.Booking{Code: "FLCCCC3333", FlightID: "f2", CustomerEmail: "b@example.com", BookedAt: base, SeatCount: 3}

	for _, b := range []*domain.Booking{older, newer, other} {
		require.NoError(t, repo.Save(ctx, b))
	}
	assert.ErrorIs(t, repo.Save(ctx, older), ErrDuplicateKey)

	got, err := repo.FindByCode(ctx, older.Code)
	require.NoError(t, err)
	assert.Len(t, got.Passengers, 2)

	got.Passengers[0].Name = "changed"
	again, _ := repo.FindByCode(ctx, older.Code)
	assert.Equal(t, "A", again.Passengers[0].Name)

	history, err := repo.FindByCustomerEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, newer.Code, history[0].Code)
	assert.Equal(t, older.Code, history[1].Code)

	none, err := repo.FindByCustomerEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, none)

	seats, err := repo.SeatsByFlight(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"f1": 3, "f2": 3}, seats)

	require.NoError(t, repo.Delete(ctx, older))
	assert.ErrorIs(t, repo.Delete(ctx, older), ErrNotFound)
	_, err = repo.FindByCode(ctx, older.Code)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeatBounds(t *testing.T) {
	assert.Equal(t, 3, seatBounds(3, -3))
	assert.Equal(t, 5, seatBounds(2, -5))
	assert.Equal(t, 0, seatBounds(0, 4))
	assert.Equal(t, 0, seatBounds(-1, 2))
}
