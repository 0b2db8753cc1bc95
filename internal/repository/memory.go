package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/google/uuid"
)

// MemoryFlightRepository keeps flights in process memory. Every method
// holds the mutex, so the conditional seat update is atomic.
type MemoryFlightRepository struct {
	mu      sync.Mutex
	flights map[string]domain.Flight
	now     func() time.Time
}

func NewMemoryFlightRepository() *MemoryFlightRepository {
	return &MemoryFlightRepository{flights: make(map[string]domain.Flight), now: time.Now}
}

func (r *MemoryFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if flight.ID == "" {
		flight.ID = uuid.NewString()
	}
	if _, ok := r.flights[flight.ID]; ok {
		return ErrDuplicateKey
	}
	now := r.now()
	flight.CreatedAt, flight.UpdatedAt = now, now
	r.flights[flight.ID] = *flight
	return nil
}

func (r *MemoryFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flights[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (r *MemoryFlightRepository) ConditionalUpdateAvailableSeats(ctx context.Context, id string, minimum, delta int) (*domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flights[id]
	if !ok {
		return nil, ErrNotFound
	}
	if f.AvailableSeats < seatBounds(minimum, delta) || f.AvailableSeats+delta > f.TotalSeats {
		return nil, ErrConflict
	}
	f.AvailableSeats += delta
	f.UpdatedAt = r.now()
	r.flights[id] = f
	return &f, nil
}

func (r *MemoryFlightRepository) Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := scheduleDay(date)
	result := make([]domain.Flight, 0)
	for _, f := range r.flights {
		if !strings.EqualFold(f.Origin, origin) || !strings.EqualFold(f.Destination, destination) {
			continue
		}
		if !scheduleDay(f.ScheduleDate).Equal(day) || f.AvailableSeats <= 0 {
			continue
		}
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DepartureTime < result[j].DepartureTime })
	return result, nil
}

func (r *MemoryFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]domain.Flight, 0, len(r.flights))
	for _, f := range r.flights {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Departure().Before(result[j].Departure()) })
	return result, nil
}

// MemoryBookingRepository keeps bookings keyed by reservation code.
type MemoryBookingRepository struct {
	mu       sync.Mutex
	bookings map[string]domain.Booking
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{bookings: make(map[string]domain.Booking)}
}

func (r *MemoryBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.Code]; ok {
		return ErrDuplicateKey
	}
	r.bookings[booking.Code] = cloneBooking(*booking)
	return nil
}

func (r *MemoryBookingRepository) FindByCode(ctx context.Context, code string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[code]
	if !ok {
		return nil, ErrNotFound
	}
	b = cloneBooking(b)
	return &b, nil
}

func (r *MemoryBookingRepository) FindByCustomerEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		if b.CustomerEmail == email {
			result = append(result, cloneBooking(b))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BookedAt.After(result[j].BookedAt) })
	return result, nil
}

func (r *MemoryBookingRepository) Delete(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.Code]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, booking.Code)
	return nil
}

func (r *MemoryBookingRepository) SeatsByFlight(ctx context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seats := make(map[string]int)
	for _, b := range r.bookings {
		seats[b.FlightID] += b.SeatCount
	}
	return seats, nil
}

func cloneBooking(b domain.Booking) domain.Booking {
	b.Passengers = append([]domain.Passenger(nil), b.Passengers...)
	return b
}

var (
	_ FlightRepository  = (*MemoryFlightRepository)(nil)
	_ BookingRepository = (*MemoryBookingRepository)(nil)
)
