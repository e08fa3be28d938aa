// Package sagalog defines the domain types for the saga log: a durable audit
// trail of every state transition a workflow execution goes through. It gives
// observability (where is/was this saga, correlated with a trace via
// trace_id) and a recovery point after a crash.
package sagalog

import "time"

// Status represents the lifecycle state of a saga execution.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusStepDone     Status = "STEP_DONE"
	StatusCompleted    Status = "COMPLETED"
	StatusCompensating Status = "COMPENSATING"
	StatusFailed       Status = "FAILED"
)

// SagaLog is a point-in-time snapshot of a saga execution. Rows are
// append-only; the latest row per saga_id is the current state.
type SagaLog struct {
	// SagaID identifies the execution. The workflow uses the order ID so
	// the log joins with business data.
	SagaID string

	// Status is the lifecycle state at the time this entry was written.
	Status Status

	// CurrentStep is the step that just executed or failed.
	CurrentStep string

	// Payload is the serialized input that started the saga. Written once
	// on STARTED.
	Payload string

	// ErrorMessages accumulates failure details as a JSON array, one entry
	// per failed step or failed compensation.
	ErrorMessages string

	// TraceID and SpanID come from the OpenTelemetry span active when the
	// entry was written, linking a log row to its distributed trace.
	TraceID string
	SpanID  string

	// UpdatedAt is the wall-clock time of this entry.
	UpdatedAt time.Time
}
