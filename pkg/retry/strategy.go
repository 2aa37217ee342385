package retry

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/4alls/Mostro-MVP-Program/pkg/retry/backoff"
)

// Strategy decides whether an action should be retried after a failed
// attempt. Strategies may sleep.
type Strategy func(attempts uint, err error) bool

// Limit caps the total number of attempts.
func Limit(maxAttempts uint) Strategy {
	return func(attempts uint, _ error) bool {
		return attempts < maxAttempts
	}
}

// RetriableErrors only retries errors matching one of retriableErrors.
func RetriableErrors(retriableErrors ...error) Strategy {
	return func(_ uint, err error) bool {
		for _, e := range retriableErrors {
			if errors.Is(err, e) {
				return true
			}
		}
		return false
	}
}

// OnRetry calls notify before every retry. Place it after the strategies
// that may decline a retry so it only observes retries that happen.
func OnRetry(notify func(attempts uint, err error)) Strategy {
	return func(attempts uint, err error) bool {
		notify(attempts, err)
		return true
	}
}

// Deadline stops retrying once timeout has elapsed since the strategy was
// created. Create it per call to Retry.
func Deadline(timeout time.Duration) Strategy {
	deadline := nowImpl().Add(timeout)
	return func(uint, error) bool {
		return nowImpl().Before(deadline)
	}
}

// Backoff sleeps for the delay given by strategy, capped at maxBackoff.
func Backoff(strategy backoff.Strategy, maxBackoff time.Duration) Strategy {
	return func(attempts uint, _ error) bool {
		sleeperImpl.Sleep(capDelay(strategy(attempts), maxBackoff))
		return true
	}
}

// BackoffWithJitter is Backoff with the capped delay randomly moved by up to
// jitter (a fraction of the delay) in either direction.
func BackoffWithJitter(strategy backoff.Strategy, maxBackoff time.Duration, jitter float64) Strategy {
	return func(attempts uint, _ error) bool {
		delay := capDelay(strategy(attempts), maxBackoff)
		sleeperImpl.Sleep(time.Duration(float64(delay) * (1 + (rand.Float64()*jitter*2 - jitter))))
		return true
	}
}

func capDelay(delay, maxBackoff time.Duration) time.Duration {
	return time.Duration(math.Min(float64(maxBackoff), float64(delay)))
}

type sleeper interface {
	Sleep(time.Duration)
}

type realSleeper struct{}

func (r *realSleeper) Sleep(d time.Duration) { time.Sleep(d) }

var sleeperImpl sleeper = &realSleeper{}

var nowImpl = time.Now
