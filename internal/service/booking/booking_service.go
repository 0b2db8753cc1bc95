package booking

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/Domenick1991/flightinventory/internal/events"
	"github.com/Domenick1991/flightinventory/internal/logger"
	"github.com/Domenick1991/flightinventory/internal/metrics"
	"github.com/Domenick1991/flightinventory/internal/repository"
)

const (
	DefaultMaxReserveAttempts = 5
	DefaultMaxCodeAttempts    = 3

	compensationTimeout = 10 * time.Second
)

type BookingUseCase interface {
	Book(ctx context.Context, flightID string, req BookingRequest) (string, error)
	Cancel(ctx context.Context, code string) error
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	GetHistoryByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	AuditInventory(ctx context.Context) ([]InventoryDiscrepancy, error)
}

// SearchCache is the part of the flight search cache that seat changes
// must invalidate.
type SearchCache interface {
	InvalidateSearch(ctx context.Context, origin, destination string, date time.Time) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingRequest struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Meal          domain.Meal
	Passengers    []domain.Passenger
}

// BookingService coordinates seat inventory and bookings across the two
// stores. Seat counts only move through the conditional update, and every
// multi-step failure is either compensated or flagged for reconciliation.
type BookingService struct {
	bookings repository.BookingRepository
	flights  repository.FlightRepository
	codes    CodeGenerator
	log      logger.Logger

	cache               SearchCache
	producer            Producer
	bookingTopic        string
	notificationsTopic  string
	reconciliationTopic string
	metrics             *metrics.Metrics
	locker              CancellationLocker

	policy             CancellationPolicy
	now                func() time.Time
	maxReserveAttempts int
	maxCodeAttempts    int
}

type BookingServiceOption func(*BookingService)

func WithCache(cache SearchCache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithReconciliationTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.reconciliationTopic = topic
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// WithRetryLimits bounds the conditional seat update retries and the
// reservation code retries. Non-positive values keep the defaults.
func WithRetryLimits(reserveAttempts, codeAttempts int) BookingServiceOption {
	return func(s *BookingService) {
		if reserveAttempts > 0 {
			s.maxReserveAttempts = reserveAttempts
		}
		if codeAttempts > 0 {
			s.maxCodeAttempts = codeAttempts
		}
	}
}

func WithCancellationPolicy(policy CancellationPolicy) BookingServiceOption {
	return func(s *BookingService) {
		s.policy = policy
	}
}

// WithCancellationLocker replaces the in-process lock that serializes
// cancellations of one reservation code.
func WithCancellationLocker(locker CancellationLocker) BookingServiceOption {
	return func(s *BookingService) {
		if locker != nil {
			s.locker = locker
		}
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	codes CodeGenerator,
	log logger.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:           bookings,
		flights:            flights,
		codes:              codes,
		log:                log,
		locker:             newLocalLocker(),
		policy:             NewCancellationPolicy(DefaultCancellationWindow, time.UTC),
		now:                time.Now,
		maxReserveAttempts: DefaultMaxReserveAttempts,
		maxCodeAttempts:    DefaultMaxCodeAttempts,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Book(ctx context.Context, flightID string, req BookingRequest) (string, error) {
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		err = storeError("load flight", "flight", err)
		s.metrics.BookingResult(resultLabel(err))
		return "", err
	}

	seats := len(req.Passengers)
	if seats == 0 {
		s.metrics.BookingResult("invalid")
		return "", domain.ValidationError{Field: "passengers", Msg: "at least one passenger required"}
	}
	for _, p := range req.Passengers {
		if p.Age < 0 {
			s.metrics.BookingResult("invalid")
			return "", domain.ValidationError{Field: "passengers.age", Msg: "age cannot be negative"}
		}
	}

	reserved, err := s.reserveSeats(ctx, flight, seats)
	if err != nil {
		s.metrics.BookingResult(resultLabel(err))
		return "", err
	}

	booking := &domain.Booking{
		FlightID:       reserved.ID,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Meal:           req.Meal,
		BookedAt:       s.now().UTC(),
		JourneyDate:    reserved.ScheduleDate,
		SeatCount:      seats,
		TotalCostCents: reserved.PriceCents * int64(seats),
		Passengers:     append([]domain.Passenger(nil), req.Passengers...),
	}

	if err := s.saveWithUniqueCode(ctx, booking); err != nil {
		err = s.compensateReservation(ctx, reserved, seats, err)
		s.metrics.BookingResult("error")
		return "", err
	}

	s.invalidateSearch(ctx, reserved)
	s.publish(ctx, events.TypeBookingCreated, booking)
	s.metrics.BookingResult("ok")
	s.log.Info("booking created", "code", booking.Code, "flight_id", booking.FlightID, "seats", seats)
	return booking.Code, nil
}

func (s *BookingService) Cancel(ctx context.Context, code string) error {
	unlock, err := s.locker.LockCancellation(ctx, code)
	if err != nil {
		if ctx.Err() != nil {
			s.metrics.CancellationResult("error")
			return domain.InternalError{Msg: "lock cancellation", Err: err}
		}
		s.log.Warn("cancellation lock unavailable, continuing unlocked", "code", code, "error", err)
	} else {
		defer unlock()
	}

	booking, err := s.bookings.FindByCode(ctx, code)
	if err != nil {
		err = storeError("load booking", "booking", err)
		s.metrics.CancellationResult(resultLabel(err))
		return err
	}

	flight, err := s.flights.GetByID(ctx, booking.FlightID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Error("booking references a missing flight", "code", booking.Code, "flight_id", booking.FlightID)
		}
		s.metrics.CancellationResult("error")
		return storeError("load flight", "flight", err)
	}

	if !s.policy.Allowed(s.now(), booking.JourneyDate, flight.DepartureTime) {
		s.metrics.CancellationResult("denied")
		return domain.CancellationDeniedError{Deadline: s.policy.Deadline(booking.JourneyDate, flight.DepartureTime)}
	}

	restored, released, err := s.releaseSeats(ctx, flight, booking.SeatCount)
	if err != nil {
		s.metrics.CancellationResult("error")
		return storeError("restore seats", "flight", err)
	}
	if released < booking.SeatCount {
		s.log.Error("seat restoration capped at capacity",
			"code", booking.Code, "flight_id", flight.ID, "seats", booking.SeatCount, "restored", released)
	}

	if err := s.bookings.Delete(ctx, booking); err != nil {
		s.metrics.CancellationResult("error")
		if cerr := s.compensateRelease(ctx, restored, booking, released, err); cerr != nil {
			return cerr
		}
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Msg: "delete booking", Err: err}
	}

	s.invalidateSearch(ctx, restored)
	s.publish(ctx, events.TypeBookingCancelled, booking)
	s.metrics.CancellationResult("ok")
	s.log.Info("booking cancelled", "code", booking.Code, "flight_id", booking.FlightID, "seats", booking.SeatCount)
	return nil
}

func (s *BookingService) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	booking, err := s.bookings.FindByCode(ctx, code)
	if err != nil {
		return nil, storeError("load booking", "booking", err)
	}
	return booking, nil
}

func (s *BookingService) GetHistoryByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	if email == "" {
		return nil, domain.ValidationError{Field: "email", Msg: "is required"}
	}
	bookings, err := s.bookings.FindByCustomerEmail(ctx, email)
	if err != nil {
		return nil, domain.InternalError{Msg: "load booking history", Err: err}
	}
	return bookings, nil
}

// reserveSeats decrements the flight's seats with the conditional update,
// re-reading the flight after each lost race.
func (s *BookingService) reserveSeats(ctx context.Context, flight *domain.Flight, seats int) (*domain.Flight, error) {
	current := flight
	for attempt := 1; ; attempt++ {
		if current.AvailableSeats < seats {
			return nil, domain.UnavailableError{Requested: seats, Available: current.AvailableSeats}
		}

		updated, err := s.flights.ConditionalUpdateAvailableSeats(ctx, current.ID, seats, -seats)
		switch {
		case err == nil:
			return updated, nil
		case errors.Is(err, repository.ErrNotFound):
			return nil, domain.NotFoundError{Resource: "flight", Err: err}
		case !errors.Is(err, repository.ErrConflict):
			return nil, domain.InternalError{Msg: "reserve seats", Err: err}
		}

		s.metrics.SeatConflict("reserve")
		if attempt >= s.maxReserveAttempts {
			return nil, domain.ConflictError{Resource: "flight", Msg: "seat inventory changed concurrently, retry the booking", Err: err}
		}

		current, err = s.flights.GetByID(ctx, flight.ID)
		if err != nil {
			return nil, storeError("reload flight", "flight", err)
		}
	}
}

// releaseSeats adds up to seats back to the flight, capped at its total
// capacity. It returns the updated flight and how many seats were added.
// Each attempt is conditional on the availability it was computed from.
func (s *BookingService) releaseSeats(ctx context.Context, flight *domain.Flight, seats int) (*domain.Flight, int, error) {
	current := flight
	for attempt := 1; ; attempt++ {
		n := min(seats, max(current.TotalSeats-current.AvailableSeats, 0))
		if n == 0 {
			return current, 0, nil
		}

		updated, err := s.flights.ConditionalUpdateAvailableSeats(ctx, current.ID, current.AvailableSeats, n)
		if err == nil {
			return updated, n, nil
		}
		if !errors.Is(err, repository.ErrConflict) || attempt >= s.maxReserveAttempts {
			return nil, 0, err
		}
		s.metrics.SeatConflict("release")

		current, err = s.flights.GetByID(ctx, flight.ID)
		if err != nil {
			return nil, 0, err
		}
	}
}

func (s *BookingService) saveWithUniqueCode(ctx context.Context, booking *domain.Booking) error {
	for attempt := 1; attempt <= s.maxCodeAttempts; attempt++ {
		code, err := s.codes.Next()
		if err != nil {
			return domain.InternalError{Msg: "generate reservation code", Err: err}
		}
		booking.Code = code

		err = s.bookings.Save(ctx, booking)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return domain.InternalError{Msg: "save booking", Err: err}
		}
		s.metrics.CodeCollision()
		s.log.Warn("reservation code collision", "code", code, "attempt", attempt)
	}
	return domain.InternalError{Msg: "could not allocate a unique reservation code", Err: repository.ErrDuplicateKey}
}

// compensateReservation gives back the seats of a booking that was never
// saved. cause is returned unless the release itself fails.
func (s *BookingService) compensateReservation(ctx context.Context, flight *domain.Flight, seats int, cause error) error {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	restored, released, err := s.releaseSeats(cctx, flight, seats)
	if err != nil {
		s.metrics.Compensation("failed")
		s.flagReconciliation(cctx, "book", flight.ID, "", seats, err)
		return domain.InternalError{Msg: "booking failed and reserved seats could not be released", Err: errors.Join(cause, err)}
	}
	if released < seats {
		s.log.Error("seat restoration capped at capacity", "flight_id", flight.ID, "seats", seats, "restored", released)
	}

	s.metrics.Compensation("ok")
	s.log.Warn("booking failed, reserved seats released", "flight_id", flight.ID, "seats", released, "error", cause)
	s.invalidateSearch(cctx, restored)
	return cause
}

// compensateRelease takes back the released seats after the booking could
// not be deleted, so the live booking keeps its seats.
func (s *BookingService) compensateRelease(ctx context.Context, flight *domain.Flight, booking *domain.Booking, released int, cause error) error {
	if released == 0 {
		return nil
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	if _, err := s.reserveSeats(cctx, flight, released); err != nil {
		s.metrics.Compensation("failed")
		s.flagReconciliation(cctx, "cancel", flight.ID, booking.Code, released, err)
		return domain.InternalError{Msg: "cancellation failed and restored seats could not be reclaimed", Err: errors.Join(cause, err)}
	}

	s.metrics.Compensation("ok")
	s.log.Warn("cancellation failed, restored seats reclaimed", "code", booking.Code, "flight_id", flight.ID, "seats", released, "error", cause)
	s.invalidateSearch(cctx, flight)
	return nil
}

func (s *BookingService) flagReconciliation(ctx context.Context, operation, flightID, code string, seats int, cause error) {
	s.metrics.ReconciliationFlagged()
	s.log.Error("inventory reconciliation required",
		"operation", operation, "flight_id", flightID, "code", code, "seats", seats, "error", cause)

	if s.producer == nil || s.reconciliationTopic == "" {
		return
	}
	event := events.NewReconciliationEvent(operation, flightID, code, seats, cause, s.now())
	err := s.producer.Publish(ctx, s.reconciliationTopic, flightID, event)
	s.metrics.EventPublished(event.Type, err)
	if err != nil {
		s.log.Error("failed to publish reconciliation event", "flight_id", flightID, "error", err)
	}
}

func (s *BookingService) invalidateSearch(ctx context.Context, flight *domain.Flight) {
	if s.cache == nil || flight == nil {
		return
	}
	if err := s.cache.InvalidateSearch(ctx, flight.Origin, flight.Destination, flight.ScheduleDate); err != nil {
		s.log.Warn("failed to invalidate search cache", "flight_id", flight.ID, "error", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := events.NewBookingEvent(eventType, booking, s.now())

	err := s.producer.Publish(ctx, s.bookingTopic, booking.Code, event)
	s.metrics.EventPublished(eventType, err)
	if err != nil {
		s.log.Warn("failed to publish booking event", "type", eventType, "code", booking.Code, "error", err)
	}
	if s.notificationsTopic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Code, event); err != nil {
		s.log.Warn("failed to publish notification", "type", eventType, "code", booking.Code, "error", err)
	}
}

// storeError maps repository lookups to domain errors.
func storeError(op, resource string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return domain.InternalError{Msg: op, Err: err}
}

func resultLabel(err error) string {
	switch {
	case domain.IsNotFound(err):
		return "not_found"
	case domain.IsUnavailable(err):
		return "unavailable"
	case domain.IsConflict(err):
		return "conflict"
	default:
		return "error"
	}
}

var _ BookingUseCase = (*BookingService)(nil)
