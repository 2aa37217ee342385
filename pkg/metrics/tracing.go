package metrics

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// TraceMethodCall traces a method call with a given struct/package and method names
func TraceMethodCall(ctx context.Context, structOrPackageName, methodName string) *MethodTracer {
	if ctx == nil {
		return nil
	}

	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return nil
	}

	name := fmt.Sprintf("%s %s", structOrPackageName, methodName)

	return &MethodTracer{
		name: name,
		txn:  txn,
		seg:  txn.StartSegment(name),
	}
}

// MethodTracer collects analytics for a given method call within an existing
// trace.
type MethodTracer struct {
	name string
	txn  *newrelic.Transaction
	seg  *newrelic.Segment
}

// AddAttribute adds a key-value pair metadata to the method trace
func (t *MethodTracer) AddAttribute(key string, value interface{}) {
	if t == nil {
		return
	}

	t.seg.AddAttribute(key, value)
}

// OnError observes an error within a method trace. Errors are tagged with
// the segment name so failures can be grouped per call site.
func (t *MethodTracer) OnError(err error) {
	if t == nil || err == nil {
		return
	}

	t.txn.NoticeError(newrelic.Error{
		Message:    err.Error(),
		Class:      t.name,
		Attributes: map[string]interface{}{"segment": t.name},
	})
}

// End completes the trace for the method call.
func (t *MethodTracer) End() {
	if t == nil {
		return
	}

	t.seg.End()
}
