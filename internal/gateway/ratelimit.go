package gateway

import (
	"sync"
	"time"
)

// windowLimiter is a fixed-window counter keyed by wall-clock window index.
// It protects the local request budget against upstream bans; it is not a
// correctness mechanism for money movement.
type windowLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	index  int64
	count  int

	now func() time.Time
}

func newWindowLimiter(limit int, window time.Duration) *windowLimiter {
	return &windowLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *windowLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	index := l.now().UnixNano() / int64(l.window)
	if index != l.index {
		l.index = index
		l.count = 0
	}

	if l.count >= l.limit {
		return false
	}
	l.count++
	return true
}
