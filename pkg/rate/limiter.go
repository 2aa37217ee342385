// Package rate limits operations per key.
package rate

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter limits operations based on a provided key.
type Limiter interface {
	Allow(key string) (bool, error)
}

// LimiterCtor allows the creation of a Limiter using a provided rate.
type LimiterCtor func(rate float64) Limiter

type localRateLimiter struct {
	limit rate.Limit
	burst int

	sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLocalRateLimiter returns an in memory limiter allowing limit operations
// per second for each key. Bursts of up to one second's worth of operations
// are allowed, and at least one.
func NewLocalRateLimiter(limit rate.Limit) Limiter {
	burst := int(limit)
	if burst < 1 {
		burst = 1
	}

	return &localRateLimiter{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// NewLocalRateLimiterCtor adapts NewLocalRateLimiter to a LimiterCtor.
func NewLocalRateLimiterCtor() LimiterCtor {
	return func(r float64) Limiter {
		if r <= 0 {
			return &NoLimiter{}
		}
		return NewLocalRateLimiter(rate.Limit(r))
	}
}

// Allow implements limiter.Allow.
func (l *localRateLimiter) Allow(key string) (bool, error) {
	l.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	l.Unlock()

	return limiter.Allow(), nil
}

// NoLimiter never limits operations.
type NoLimiter struct {
}

// Allow implements limiter.Allow.
func (n *NoLimiter) Allow(_ string) (bool, error) {
	return true, nil
}
