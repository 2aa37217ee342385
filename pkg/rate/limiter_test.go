package rate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestNoLimiter(t *testing.T) {
	l := &NoLimiter{}
	for i := 0; i < 10000; i++ {
		allowed, err := l.Allow("")
		assert.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestLocalRateLimiter(t *testing.T) {
	l := NewLocalRateLimiter(rate.Limit(2))

	for _, key := range []string{"getAccountInfo", "sendTransaction"} {
		for i := 0; i < 2; i++ {
			allowed, err := l.Allow(key)
			assert.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := l.Allow(key)
		assert.NoError(t, err)
		assert.False(t, allowed)
	}
}

func TestLocalRateLimiter_FractionalRate(t *testing.T) {
	l := NewLocalRateLimiter(rate.Limit(0.5))

	allowed, err := l.Allow("a")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = l.Allow("a")
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestLocalRateLimiterCtor(t *testing.T) {
	ctor := NewLocalRateLimiterCtor()

	_, ok := ctor(0).(*NoLimiter)
	assert.True(t, ok)

	_, ok = ctor(5).(*localRateLimiter)
	assert.True(t, ok)
}
