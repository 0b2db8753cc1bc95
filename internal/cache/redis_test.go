package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/flightinventory/config"
	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(config.RedisConfig{Addr: mr.Addr()}, 30*time.Second)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_SearchRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	date := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	miss, err := c.GetSearch(ctx, "Delhi", "Mumbai", date)
	require.NoError(t, err)
	assert.Nil(t, miss)

	flights := []domain.Flight{{
		ID:             "f1",
		AirlineName:    "Indigo",
		Origin:         "Delhi",
		Destination:    "Mumbai",
		ScheduleDate:   date,
		DepartureTime:  domain.NewTimeOfDay(10, 0, 0),
		ArrivalTime:    domain.NewTimeOfDay(12, 30, 0),
		PriceCents:     450000,
		TotalSeats:     10,
		AvailableSeats: 7,
	}}
	require.NoError(t, c.SetSearch(ctx, "Delhi", "Mumbai", date, flights))
	assert.True(t, mr.Exists("cache:flights:search:delhi:mumbai:2026-12-01"))
	assert.Equal(t, 30*time.Second, mr.TTL("cache:flights:search:delhi:mumbai:2026-12-01"))

	got, err := c.GetSearch(ctx, " DELHI", "mumbai", date)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "f1", got[0].ID)
	assert.Equal(t, domain.NewTimeOfDay(12, 30, 0), got[0].ArrivalTime)
	assert.Equal(t, 7, got[0].AvailableSeats)

	require.NoError(t, c.InvalidateSearch(ctx, "Delhi", "Mumbai", date))
	assert.False(t, mr.Exists("cache:flights:search:delhi:mumbai:2026-12-01"))
}

func TestRedisCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	date := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, c.SetSearch(ctx, "Delhi", "Mumbai", date, []domain.Flight{}))
	mr.FastForward(31 * time.Second)

	got, err := c.GetSearch(ctx, "Delhi", "Mumbai", date)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_Unreachable(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	mr.Close()

	_, err := c.GetSearch(ctx, "Delhi", "Mumbai", time.Now())
	assert.Error(t, err)
	assert.Error(t, c.Ping(ctx))
}

func TestRedisCache_LockCancellation(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	unlock, err := c.LockCancellation(ctx, "FLABCD1234")
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:booking:cancel:FLABCD1234"))

	waitCtx, cancel := context.WithTimeout(ctx, 120*time.Millisecond)
	defer cancel()
	_, err = c.LockCancellation(waitCtx, "FLABCD1234")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := c.LockCancellation(ctx, "FLZZZZ0000")
	require.NoError(t, err)
	other()

	unlock()
	assert.False(t, mr.Exists("lock:booking:cancel:FLABCD1234"))

	again, err := c.LockCancellation(ctx, "FLABCD1234")
	require.NoError(t, err)
	again()
}

func TestRedisCache_UnlockKeepsForeignLock(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	unlock, err := c.LockCancellation(ctx, "FLABCD1234")
	require.NoError(t, err)

	// The lock expired and another holder took it.
	require.NoError(t, mr.Set("lock:booking:cancel:FLABCD1234", "someone-else"))
	unlock()

	got, err := mr.Get("lock:booking:cancel:FLABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}
