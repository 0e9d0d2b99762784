package api

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a sliding-window request limiter keyed by client host.
// It is an explicitly scoped value owned by the server, guarded by one
// mutex; max <= 0 disables limiting.
type RateLimiter struct {
	mu        sync.Mutex
	max       int
	window    time.Duration
	hits      map[string][]time.Time
	lastSweep time.Time

	// now is replaceable in tests.
	now func() time.Time
}

// NewRateLimiter creates a limiter allowing max requests per window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		max:    max,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow records a request for key and reports whether it is within the
// window budget.
func (l *RateLimiter) Allow(key string) bool {
	if l.max <= 0 {
		return true
	}

	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	// Evict idle clients at most once per window, otherwise keys for
	// hosts that never return would accumulate forever.
	if now.Sub(l.lastSweep) >= l.window {
		for k, ts := range l.hits {
			if k == key {
				continue
			}
			live := ts[:0]
			for _, t := range ts {
				if t.After(cutoff) {
					live = append(live, t)
				}
			}
			if len(live) == 0 {
				delete(l.hits, k)
			} else {
				l.hits[k] = live
			}
		}
		l.lastSweep = now
	}

	times := l.hits[key]
	keep := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			keep = append(keep, t)
		}
	}

	if len(keep) >= l.max {
		l.hits[key] = keep
		return false
	}

	l.hits[key] = append(keep, now)
	return true
}

// Middleware rejects requests over the budget with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			key = r.RemoteAddr
		}
		if key == "" {
			key = "anonymous"
		}

		if !l.Allow(key) {
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please retry shortly.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
