package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	l := newLocalLocker()
	ctx := context.Background()

	unlock, err := l.LockCancellation(ctx, "FLABCD1234")
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = l.LockCancellation(waitCtx, "FLABCD1234")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := l.LockCancellation(ctx, "FLZZZZ0000")
	require.NoError(t, err)
	other()

	acquired := make(chan struct{})
	go func() {
		next, err := l.LockCancellation(ctx, "FLABCD1234")
		if err == nil {
			next()
		}
		close(acquired)
	}()
	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter not released")
	}
	assert.Empty(t, l.locks)
}
