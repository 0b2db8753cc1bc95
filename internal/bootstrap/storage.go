package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightinventory/config"
	"github.com/Domenick1991/flightinventory/internal/logger"
	"github.com/Domenick1991/flightinventory/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Storage holds the flight and booking stores for the configured driver.
type Storage struct {
	Flights  repository.FlightRepository
	Bookings repository.BookingRepository
	close    func()
}

func (s *Storage) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

func OpenStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		log.Info("storage ready", "driver", cfg.Storage.Driver, "host", cfg.Database.Host, "db", cfg.Database.Name)
		return &Storage{
			Flights:  repository.NewFlightRepository(pool),
			Bookings: repository.NewBookingRepository(pool),
			close:    pool.Close,
		}, nil

	case config.StorageMongo:
		client, err := newMongoClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		disconnect := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Warn("mongo disconnect failed", "error", err)
			}
		}
		db := client.Database(cfg.Mongo.Database)
		flights, err := repository.NewMongoFlightRepository(ctx, db)
		if err != nil {
			disconnect()
			return nil, err
		}
		bookings, err := repository.NewMongoBookingRepository(ctx, db)
		if err != nil {
			disconnect()
			return nil, err
		}
		log.Info("storage ready", "driver", cfg.Storage.Driver, "db", cfg.Mongo.Database)
		return &Storage{
			Flights:  flights,
			Bookings: bookings,
			close:    disconnect,
		}, nil

	default:
		log.Warn("using in-memory storage, data is lost on restart")
		return &Storage{
			Flights:  repository.NewMemoryFlightRepository(),
			Bookings: repository.NewMemoryBookingRepository(),
		}, nil
	}
}

func newMongoClient(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)
	if cfg.User != "" && cfg.Password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: cfg.User,
			Password: cfg.Password,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}
