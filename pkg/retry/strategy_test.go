package retry

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/4alls/Mostro-MVP-Program/pkg/retry/backoff"
)

func TestLimit(t *testing.T) {
	s := Limit(3)
	assert.True(t, s(1, nil))
	assert.True(t, s(2, nil))
	assert.False(t, s(3, nil))
}

func TestRetriableErrors(t *testing.T) {
	a, b := errors.New("a"), errors.New("b")
	s := RetriableErrors(a, b)

	assert.True(t, s(1, a))
	assert.True(t, s(1, fmt.Errorf("wrapped: %w", b)))
	assert.False(t, s(1, errors.New("c")))
}

func TestOnRetry(t *testing.T) {
	var observed []uint
	s := OnRetry(func(attempts uint, err error) {
		assert.EqualError(t, err, "err")
		observed = append(observed, attempts)
	})

	assert.True(t, s(1, errors.New("err")))
	assert.True(t, s(2, errors.New("err")))
	assert.Equal(t, []uint{1, 2}, observed)
}

func TestDeadline(t *testing.T) {
	now := time.Unix(1700000000, 0)
	nowImpl = func() time.Time { return now }
	t.Cleanup(func() { nowImpl = time.Now })

	s := Deadline(time.Second)
	assert.True(t, s(1, nil))

	now = now.Add(999 * time.Millisecond)
	assert.True(t, s(2, nil))

	now = now.Add(time.Millisecond)
	assert.False(t, s(3, nil))
}

func TestBackoff(t *testing.T) {
	ts := useTestSleeper(t)
	s := Backoff(backoff.BinaryExponential(100*time.Millisecond), 300*time.Millisecond)

	for i := uint(1); i <= 4; i++ {
		assert.True(t, s(i, errors.New("err")))
	}
	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
		300 * time.Millisecond,
	}, ts.sleepTimes)
}

func TestBackoffWithJitter(t *testing.T) {
	ts := useTestSleeper(t)

	delay := time.Millisecond
	s := BackoffWithJitter(backoff.Constant(delay), delay, 0.1)
	for i := 0; i < 10000; i++ {
		assert.True(t, s(1, errors.New("err")))
	}

	for _, d := range ts.sleepTimes {
		assert.InDelta(t, float64(delay), float64(d), 0.1*float64(delay))
	}

	// A uniform 10% window around the delay averages out to the delay.
	assert.InDelta(t, float64(delay), float64(ts.Mean()), 0.01*float64(delay))
}

type testSleeper struct {
	sleepTimes []time.Duration
}

func useTestSleeper(t *testing.T) *testSleeper {
	ts := &testSleeper{}
	sleeperImpl = ts
	t.Cleanup(func() {
		sleeperImpl = &realSleeper{}
	})
	return ts
}

func (t *testSleeper) Sleep(d time.Duration) {
	t.sleepTimes = append(t.sleepTimes, d)
}

func (t *testSleeper) Total() (total time.Duration) {
	for _, d := range t.sleepTimes {
		total += d
	}
	return total
}

func (t *testSleeper) Mean() time.Duration {
	if len(t.sleepTimes) == 0 {
		return 0
	}
	return time.Duration(math.Round(float64(t.Total()) / float64(len(t.sleepTimes))))
}
