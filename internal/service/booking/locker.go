package booking

import (
	"context"
	"sync"
)

// CancellationLocker serializes cancellations of the same reservation code.
// unlock must be called once the cancellation has finished.
type CancellationLocker interface {
	LockCancellation(ctx context.Context, code string) (unlock func(), err error)
}

// localLocker serializes cancellations within one process.
type localLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newLocalLocker() *localLocker {
	return &localLocker{locks: make(map[string]chan struct{})}
}

func (l *localLocker) LockCancellation(ctx context.Context, code string) (func(), error) {
	for {
		l.mu.Lock()
		held, ok := l.locks[code]
		if !ok {
			done := make(chan struct{})
			l.locks[code] = done
			l.mu.Unlock()
			return func() {
				l.mu.Lock()
				delete(l.locks, code)
				l.mu.Unlock()
				close(done)
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-held:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
