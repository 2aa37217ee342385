package mostro

import (
	"fmt"

	"github.com/pkg/errors"
)

type logCarrier interface {
	LogMessages() []string
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// NormalizeError converts any error into a *Failure:
//
//   - DiagnosticLog holds the logs of the first error in the chain that
//     carries program logs, or an empty slice.
//   - Message is the error text, falling back to a generic message that
//     embeds the raw error value.
//   - Trace is the deepest stack trace recorded in the chain, if any.
//
// NormalizeError never panics.
func NormalizeError(err error) (failure *Failure) {
	failure = &Failure{
		DiagnosticLog: []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			failure = &Failure{
				Message:       fmt.Sprintf("an unknown error occurred: %#v", err),
				DiagnosticLog: []string{},
			}
		}
	}()

	if err == nil {
		failure.Message = "an unknown error occurred: <nil>"
		return failure
	}

	var carrier logCarrier
	if errors.As(err, &carrier) {
		if logs := carrier.LogMessages(); len(logs) > 0 {
			failure.DiagnosticLog = append([]string{}, logs...)
		}
	}

	failure.Message = err.Error()
	if len(failure.Message) == 0 {
		failure.Message = fmt.Sprintf("an unknown error occurred: %#v", err)
	}

	failure.Trace = stackTrace(err)

	return failure
}

func stackTrace(err error) string {
	var deepest stackTracer
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if st, ok := cur.(stackTracer); ok {
			deepest = st
		}
	}

	if deepest == nil {
		return ""
	}
	return fmt.Sprintf("%+v", deepest.StackTrace())
}

// recoveredError converts a recovered panic value into an error. It is
// created inside the deferred recover, so its stack includes the frames that
// panicked.
func recoveredError(r interface{}) error {
	if err, ok := r.(error); ok {
		return errors.Wrap(err, "panic during submission")
	}
	return errors.Errorf("panic during submission: %v", r)
}
