package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/flightinventory/config"
	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds flight search results. Entries are invalidated when a
// booking or cancellation moves seats on one of the listed flights.
type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL: searchTTL,
	}
}

// GetSearch returns nil, nil on a miss.
func (c *RedisCache) GetSearch(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, searchKey(origin, destination, date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetSearch(ctx context.Context, origin, destination string, date time.Time, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(origin, destination, date), payload, c.searchTTL).Err()
}

func (c *RedisCache) InvalidateSearch(ctx context.Context, origin, destination string, date time.Time) error {
	return c.client.Del(ctx, searchKey(origin, destination, date)).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func searchKey(origin, destination string, date time.Time) string {
	return fmt.Sprintf("cache:flights:search:%s:%s:%s",
		strings.ToLower(strings.TrimSpace(origin)),
		strings.ToLower(strings.TrimSpace(destination)),
		date.Format(time.DateOnly))
}
