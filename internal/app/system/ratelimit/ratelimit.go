// Package ratelimit provides fixed-window rate limiting for public
// endpoints, keyed by client IP.
//
// The public enquiry endpoint is the only unauthenticated write surface,
// so it gets a limiter in front of the store: at most maxRequests
// submissions per window per key. The counter resets when the window
// elapses; there is no lockout beyond the window itself.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Defaults for the public enquiry endpoint.
const (
	DefaultMaxRequests = 5
	DefaultWindow      = 60 * time.Second
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	// Allow records an attempt for key and reports whether it is within
	// the limit. A denied attempt does not extend the window.
	Allow(ctx context.Context, key string) bool
}

// window tracks attempts for one key within the current fixed window.
type window struct {
	start time.Time
	count int
}

// Memory is an in-process fixed-window limiter. Suitable for a single
// server instance; use the Mongo-backed limiter when running more than
// one replica behind a load balancer.
type Memory struct {
	mu          sync.Mutex
	windows     map[string]*window
	maxRequests int
	windowSize  time.Duration
	lastSweep   time.Time

	// now is replaceable in tests.
	now func() time.Time
}

// NewMemory creates an in-memory limiter allowing maxRequests per
// windowSize per key.
func NewMemory(maxRequests int, windowSize time.Duration) *Memory {
	return &Memory{
		windows:     make(map[string]*window),
		maxRequests: maxRequests,
		windowSize:  windowSize,
		now:         time.Now,
	}
}

// Allow implements Limiter.
func (m *Memory) Allow(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)

	w, ok := m.windows[key]
	if !ok || !now.Before(w.start.Add(m.windowSize)) {
		// No window, or the old one elapsed: start fresh.
		m.windows[key] = &window{start: now, count: 1}
		return true
	}

	if w.count >= m.maxRequests {
		return false
	}
	w.count++
	return true
}

// sweepLocked drops expired windows so the map stays bounded by the
// number of distinct keys seen per window, not per process lifetime.
func (m *Memory) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < m.windowSize {
		return
	}
	m.lastSweep = now
	for key, w := range m.windows {
		if !now.Before(w.start.Add(m.windowSize)) {
			delete(m.windows, key)
		}
	}
}
