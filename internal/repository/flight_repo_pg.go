package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is the subset of *pgxpool.Pool the repositories use.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const flightColumns = `id, airline_name, origin, destination, schedule_date, departure_time, arrival_time, price_cents, total_seats, available_seats, created_at, updated_at`

type PGFlightRepository struct {
	db pgxQuerier
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	if flight.ID == "" {
		flight.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx, `INSERT INTO flights (id, airline_name, origin, destination, schedule_date, departure_time, arrival_time, price_cents, total_seats, available_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		flight.ID, flight.AirlineName, flight.Origin, flight.Destination, scheduleDay(flight.ScheduleDate),
		timeOfDayToPG(flight.DepartureTime), timeOfDayToPG(flight.ArrivalTime),
		flight.PriceCents, flight.TotalSeats, flight.AvailableSeats).
		Scan(&flight.CreatedAt, &flight.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

// ConditionalUpdateAvailableSeats relies on the row lock taken by UPDATE:
// the WHERE clause is re-evaluated against the committed row, so two
// concurrent decrements can never both pass the bounds check.
func (r *PGFlightRepository) ConditionalUpdateAvailableSeats(ctx context.Context, id string, minimum, delta int) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `UPDATE flights
		SET available_seats = available_seats + $3, updated_at = now()
		WHERE id = $1 AND available_seats >= $2 AND available_seats + $3 <= total_seats
		RETURNING `+flightColumns, id, seatBounds(minimum, delta), delta))
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists int
	if err := r.db.QueryRow(ctx, `SELECT 1 FROM flights WHERE id=$1`, id).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return nil, ErrConflict
}

func (r *PGFlightRepository) Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE lower(origin) = lower($1) AND lower(destination) = lower($2) AND schedule_date = $3 AND available_seats > 0
		ORDER BY departure_time`, origin, destination, scheduleDay(date))
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY schedule_date, departure_time`)
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var (
		f        domain.Flight
		dep, arr pgtype.Time
	)
	if err := row.Scan(&f.ID, &f.AirlineName, &f.Origin, &f.Destination, &f.ScheduleDate, &dep, &arr,
		&f.PriceCents, &f.TotalSeats, &f.AvailableSeats, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.DepartureTime = timeOfDayFromPG(dep)
	f.ArrivalTime = timeOfDayFromPG(arr)
	return &f, nil
}

func timeOfDayToPG(t domain.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t) * int64(time.Second/time.Microsecond), Valid: true}
}

func timeOfDayFromPG(t pgtype.Time) domain.TimeOfDay {
	return domain.TimeOfDay(t.Microseconds / int64(time.Second/time.Microsecond))
}

// isUniqueViolation reports SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ FlightRepository = (*PGFlightRepository)(nil)
