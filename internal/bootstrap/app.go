package bootstrap

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightinventory/config"
	"github.com/Domenick1991/flightinventory/internal/cache"
	"github.com/Domenick1991/flightinventory/internal/events"
	"github.com/Domenick1991/flightinventory/internal/logger"
	"github.com/Domenick1991/flightinventory/internal/metrics"
	"github.com/Domenick1991/flightinventory/internal/service/booking"
	"github.com/Domenick1991/flightinventory/internal/service/flights"
	"github.com/prometheus/client_golang/prometheus"
)

// App is the wired service graph shared by the server and the worker.
type App struct {
	Flights   *flights.FlightService
	Bookings  *booking.BookingService
	Metrics   *metrics.Metrics
	storage   *Storage
	cache     *cache.RedisCache
	publisher events.Publisher
	log       logger.Logger
}

func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger, reg prometheus.Registerer) (*App, error) {
	storage, err := OpenStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	location, err := cfg.Booking.Location()
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("booking timezone: %w", err)
	}

	app := &App{
		Metrics: metrics.NewMetrics(cfg.Metrics.Namespace, reg),
		storage: storage,
		log:     log,
	}

	opts := []booking.BookingServiceOption{
		booking.WithMetrics(app.Metrics),
		booking.WithRetryLimits(cfg.Booking.MaxReserveAttempts, cfg.Booking.MaxCodeAttempts),
		booking.WithCancellationPolicy(booking.NewCancellationPolicy(cfg.Booking.CancellationWindow(), location)),
	}

	// The flight service treats an untyped nil cache as "no cache".
	var flightCache flights.FlightCache
	if cfg.Redis.Addr != "" {
		app.cache = cache.NewRedisCache(cfg.Redis, cfg.Booking.SearchCacheTTL())
		if err := app.cache.Ping(ctx); err != nil {
			log.Warn("redis unavailable, search cache will miss until it recovers", "addr", cfg.Redis.Addr, "error", err)
		}
		flightCache = app.cache
		opts = append(opts, booking.WithCache(app.cache), booking.WithCancellationLocker(app.cache))
	}

	if publisher := NewPublisher(cfg, log); publisher != nil {
		if checker, ok := publisher.(interface{ CheckConnection(context.Context) error }); ok {
			if err := checker.CheckConnection(ctx); err != nil {
				log.Warn("broker unreachable, events will be dropped until it recovers", "broker", cfg.Broker.Kind, "error", err)
			}
		}
		app.publisher = publisher
		opts = append(opts,
			booking.WithProducer(publisher, cfg.Booking.BookingTopic),
			booking.WithNotificationsTopic(cfg.Booking.NotificationsTopic),
			booking.WithReconciliationTopic(cfg.Booking.ReconciliationTopic),
		)
	}

	app.Flights = flights.NewFlightService(storage.Flights, flightCache, log)
	app.Bookings = booking.NewBookingService(
		storage.Bookings,
		storage.Flights,
		booking.NewRandomCodeGenerator(cfg.Booking.CodePrefix, cfg.Booking.CodeLength),
		log,
		opts...,
	)
	return app, nil
}

func (a *App) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("close publisher", "error", err)
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("close redis", "error", err)
		}
	}
	a.storage.Close()
}
