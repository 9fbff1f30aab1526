package pressroom

import (
	"sync"
	"time"
)

// RateLimiter counts hits per key in a sliding window. It satisfies echo's
// middleware.RateLimiterStore, which guards /api/search.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	stop   chan struct{}
	once   sync.Once
}

// NewRateLimiter creates a RateLimiter that allows max hits per window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	l := &RateLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		stop:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *RateLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for key, hits := range l.hits {
			kept := prune(hits, cutoff)
			if len(kept) == 0 {
				delete(l.hits, key)
			} else {
				l.hits[key] = kept
			}
		}
		l.mu.Unlock()
	}
}

// Stop ends the background cleanup. It is safe to call more than once.
func (l *RateLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Allow records a hit for key when it is under the limit.
func (l *RateLimiter) Allow(key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.check(key) {
		return false, nil
	}
	l.hits[key] = append(l.hits[key], time.Now())
	return true, nil
}

func (l *RateLimiter) check(key string) bool {
	kept := prune(l.hits[key], time.Now().Add(-l.window))
	l.hits[key] = kept
	return len(kept) < l.max
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
