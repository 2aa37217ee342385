package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/4alls/Mostro-MVP-Program/pkg/retry/backoff"
)

func TestRetry_Sleeps(t *testing.T) {
	ts := useTestSleeper(t)

	n, err := Retry(func() error { return errors.New("err") },
		Limit(3),
		Backoff(backoff.Constant(500*time.Millisecond), 500*time.Millisecond),
	)
	assert.Error(t, err)
	assert.EqualValues(t, 3, n)
	assert.Equal(t, time.Second, ts.Total())
}

func TestRetrier(t *testing.T) {
	retriableErr := errors.New("retriable")
	r := NewRetrier(Limit(5), RetriableErrors(retriableErr))

	attempts, err := r.Retry(func() error { return nil })
	assert.NoError(t, err)
	assert.EqualValues(t, 1, attempts)

	attempts, err = r.Retry(func() error { return errors.New("unknown") })
	assert.Error(t, err)
	assert.EqualValues(t, 1, attempts)

	attempts, err = r.Retry(func() error { return retriableErr })
	assert.Equal(t, retriableErr, err)
	assert.EqualValues(t, 5, attempts)
}

func TestRetry_EventualSuccess(t *testing.T) {
	var calls int
	attempts, err := Retry(func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, Limit(10))

	assert.NoError(t, err)
	assert.EqualValues(t, 3, attempts)
}
