package shareserver

import (
	"sync"
	"time"
)

// RateLimiter enforces a fixed request quota per client key (the
// remote address) within a rolling window.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string][]time.Time
}

// NewRateLimiter allows limit requests per window for each key.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string][]time.Time),
	}
}

// Allow records a request for key and reports whether it is within
// quota. remaining is the quota left after this request; reset is
// when the oldest counted request falls out of the window.
func (r *RateLimiter) Allow(key string) (allowed bool, remaining int, reset time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)

	kept := r.clients[key][:0]
	for _, at := range r.clients[key] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}

	if len(kept) >= r.limit {
		r.clients[key] = kept
		return false, 0, kept[0].Add(r.window)
	}

	kept = append(kept, now)
	r.clients[key] = kept
	return true, r.limit - len(kept), kept[0].Add(r.window)
}

// Limit returns the configured quota.
func (r *RateLimiter) Limit() int {
	return r.limit
}

// Prune drops keys with no requests inside the window. Called from
// the server's sweep loop to keep the map bounded.
func (r *RateLimiter) Prune() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.window)
	for key, times := range r.clients {
		live := false
		for _, at := range times {
			if at.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(r.clients, key)
		}
	}
}
