package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	cancelLockTTL  = 30 * time.Second
	cancelLockPoll = 50 * time.Millisecond
)

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockCancellation takes a per-code lock shared by every process on the
// same Redis. It waits until the lock is free or ctx is done. The lock
// expires on its own if the holder dies.
func (c *RedisCache) LockCancellation(ctx context.Context, code string) (func(), error) {
	key := cancelLockKey(code)
	token := uuid.NewString()

	ticker := time.NewTicker(cancelLockPoll)
	defer ticker.Stop()
	for {
		ok, err := c.client.SetNX(ctx, key, token, cancelLockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// The caller's ctx may already be done.
				rctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = unlockScript.Run(rctx, c.client, []string{key}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func cancelLockKey(code string) string {
	return "lock:booking:cancel:" + code
}
