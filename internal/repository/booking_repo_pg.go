package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `code, flight_id, customer_name, customer_email, customer_phone, meal, booked_at, journey_date, seat_count, total_cost_cents, passengers`

// passengerRecord is the JSONB shape of an embedded passenger.
type passengerRecord struct {
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	Age       int    `json:"age"`
	SeatLabel string `json:"seat_number"`
}

type PGBookingRepository struct {
	db pgxQuerier
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	_, err := r.db.Exec(ctx, `INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		booking.Code, booking.FlightID, booking.CustomerName, booking.CustomerEmail, booking.CustomerPhone,
		string(booking.Meal), booking.BookedAt, scheduleDay(booking.JourneyDate), booking.SeatCount,
		booking.TotalCostCents, toPassengerRecords(booking.Passengers))
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *PGBookingRepository) FindByCode(ctx context.Context, code string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE code=$1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *PGBookingRepository) FindByCustomerEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE customer_email=$1 ORDER BY booked_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) Delete(ctx context.Context, booking *domain.Booking) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE code=$1`, booking.Code)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) SeatsByFlight(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT flight_id, SUM(seat_count) FROM bookings GROUP BY flight_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make(map[string]int)
	for rows.Next() {
		var (
			flightID string
			total    int64
		)
		if err := rows.Scan(&flightID, &total); err != nil {
			return nil, err
		}
		seats[flightID] = int(total)
	}
	return seats, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b          domain.Booking
		meal       string
		passengers []passengerRecord
	)
	if err := row.Scan(&b.Code, &b.FlightID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &meal,
		&b.BookedAt, &b.JourneyDate, &b.SeatCount, &b.TotalCostCents, &passengers); err != nil {
		return nil, err
	}
	b.Meal = domain.Meal(meal)
	b.Passengers = fromPassengerRecords(passengers)
	return &b, nil
}

func toPassengerRecords(passengers []domain.Passenger) []passengerRecord {
	records := make([]passengerRecord, 0, len(passengers))
	for _, p := range passengers {
		records = append(records, passengerRecord{Name: p.Name, Gender: p.Gender, Age: p.Age, SeatLabel: p.SeatLabel})
	}
	return records
}

func fromPassengerRecords(records []passengerRecord) []domain.Passenger {
	passengers := make([]domain.Passenger, 0, len(records))
	for _, p := range records {
		passengers = append(passengers, domain.Passenger{Name: p.Name, Gender: p.Gender, Age: p.Age, SeatLabel: p.SeatLabel})
	}
	return passengers
}

var _ BookingRepository = (*PGBookingRepository)(nil)
