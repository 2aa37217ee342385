// Package retry runs actions until they succeed or a strategy gives up.
package retry

// Action is a function to be performed in a retriable manner.
type Action func() error

// Retrier retries the provided action.
type Retrier interface {
	Retry(action Action) (uint, error)
}

type retrier struct {
	strategies []Strategy
}

// NewRetrier returns a Retrier that applies the strategies to every action.
// Without strategies the action is retried until it succeeds.
func NewRetrier(strategies ...Strategy) Retrier {
	return &retrier{
		strategies: strategies,
	}
}

func (r *retrier) Retry(action Action) (uint, error) {
	return Retry(action, r.strategies...)
}

// Retry runs action until it succeeds or a strategy declines another attempt.
// It returns the number of attempts made and the last error.
//
// Strategies run in order after each failure, so strategies that sleep should
// come last.
func Retry(action Action, strategies ...Strategy) (uint, error) {
	for attempt := uint(1); ; attempt++ {
		err := action()
		if err == nil {
			return attempt, nil
		}

		for _, s := range strategies {
			if !s(attempt, err) {
				return attempt, err
			}
		}
	}
}
