package mostro

import (
	"encoding/json"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
)

// SubmissionResult is the outcome of a submission: either *Success or
// *Failure.
type SubmissionResult interface {
	// Succeeded reports whether the result is a *Success.
	Succeeded() bool

	isSubmissionResult()
}

// Success is returned once a transaction reached the context's commitment
// level without error.
type Success struct {
	Signature solana.Signature
}

func (*Success) Succeeded() bool     { return true }
func (*Success) isSubmissionResult() {}

func (s *Success) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Signature string `json:"signature"`
	}{
		Signature: s.Signature.String(),
	})
}

// Failure is the normalized form of any submission error. DiagnosticLog is
// never nil.
type Failure struct {
	Message       string   `json:"message"`
	DiagnosticLog []string `json:"diagnosticLog"`
	Trace         string   `json:"trace,omitempty"`
}

func (*Failure) Succeeded() bool     { return false }
func (*Failure) isSubmissionResult() {}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) MarshalJSON() ([]byte, error) {
	type failure Failure

	copied := failure(*f)
	if copied.DiagnosticLog == nil {
		copied.DiagnosticLog = []string{}
	}
	return json.Marshal(copied)
}
