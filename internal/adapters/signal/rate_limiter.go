package signal

import (
	"sync"
	"time"
)

// Limiter is a sliding-window rate limiter for one connection's inbound
// events.
type Limiter struct {
	mu       sync.Mutex
	history  []time.Time
	limit    int
	interval time.Duration
}

func NewLimiter(limit int, interval time.Duration) *Limiter {
	return &Limiter{limit: limit, interval: interval}
}

func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-l.interval)

	fresh := l.history[:0]
	for _, t := range l.history {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}
	l.history = fresh

	if len(l.history) >= l.limit {
		return false
	}
	l.history = append(l.history, now)
	return true
}
