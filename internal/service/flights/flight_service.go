package flights

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/Domenick1991/flightinventory/internal/logger"
	"github.com/Domenick1991/flightinventory/internal/repository"
)

type FlightUseCase interface {
	Add(ctx context.Context, flight *domain.Flight) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
}

type FlightCache interface {
	GetSearch(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error)
	SetSearch(ctx context.Context, origin, destination string, date time.Time, flights []domain.Flight) error
	InvalidateSearch(ctx context.Context, origin, destination string, date time.Time) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
	log   logger.Logger
}

// NewFlightService builds the service; cache may be nil.
func NewFlightService(repo repository.FlightRepository, cache FlightCache, log logger.Logger) *FlightService {
	return &FlightService{repo: repo, cache: cache, log: log}
}

// Add registers new inventory. All seats start available.
func (s *FlightService) Add(ctx context.Context, flight *domain.Flight) (string, error) {
	if err := flight.Validate(); err != nil {
		return "", err
	}
	flight.Origin = strings.TrimSpace(flight.Origin)
	flight.Destination = strings.TrimSpace(flight.Destination)
	flight.ScheduleDate = domain.DateOnly(flight.ScheduleDate)
	flight.AvailableSeats = flight.TotalSeats

	if err := s.repo.Create(ctx, flight); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return "", domain.ConflictError{Resource: "flight", Msg: "flight already exists", Err: err}
		}
		return "", domain.InternalError{Msg: "create flight", Err: err}
	}

	if s.cache != nil {
		if err := s.cache.InvalidateSearch(ctx, flight.Origin, flight.Destination, flight.ScheduleDate); err != nil {
			s.log.Warn("failed to invalidate search cache", "flight_id", flight.ID, "error", err)
		}
	}
	s.log.Info("flight added", "flight_id", flight.ID, "airline", flight.AirlineName, "seats", flight.TotalSeats)
	return flight.ID, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFoundError{Resource: "flight", Err: err}
		}
		return nil, domain.InternalError{Msg: "load flight", Err: err}
	}
	return flight, nil
}

// Search lists flights on the route and date that still have seats.
// Results are served from the cache when present. A fill that races an
// invalidation can leave a stale entry until the search TTL expires, so
// cached seat counts are advisory: sold-out flights are dropped on read
// and Book re-checks availability with the conditional update.
func (s *FlightService) Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return nil, domain.ValidationError{Field: "route", Msg: "origin and destination are required"}
	}
	if date.IsZero() {
		return nil, domain.ValidationError{Field: "date", Msg: "is required"}
	}
	date = domain.DateOnly(date)

	if s.cache != nil {
		cached, err := s.cache.GetSearch(ctx, origin, destination, date)
		if err == nil && cached != nil {
			return withSeats(cached), nil
		}
		if err != nil {
			s.log.Warn("search cache read failed", "error", err)
		}
	}

	flights, err := s.repo.Search(ctx, origin, destination, date)
	if err != nil {
		return nil, domain.InternalError{Msg: "search flights", Err: err}
	}
	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, origin, destination, date, flights); err != nil {
			s.log.Warn("search cache write failed", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "list flights", Err: err}
	}
	return flights, nil
}

func withSeats(flights []domain.Flight) []domain.Flight {
	open := flights[:0:0]
	for _, f := range flights {
		if f.AvailableSeats > 0 {
			open = append(open, f)
		}
	}
	return open
}

var _ FlightUseCase = (*FlightService)(nil)
