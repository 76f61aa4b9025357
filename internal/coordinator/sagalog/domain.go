// Package sagalog defines the durable audit trail of saga transitions.
//
// Every attempt to move an order saga forward (or to compensate it) appends
// one row here. The log serves two purposes:
//
//  1. Observability: query the table to see exactly where a saga is or was,
//     and jump to the distributed trace via the trace_id column.
//
//  2. Reconciliation: the order service does not roll back a status write
//     when a later event publish fails, and a crash between a successful
//     charge and the PROCESSING write leaves the order stuck at
//     PENDING_PAYMENT. Both conditions are detectable from this log
//     (a charge-payment STEP_DONE row without a COMPLETED row).
package sagalog

import "time"

// Status is the lifecycle state of a saga execution.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusStepDone     Status = "STEP_DONE"
	StatusCompleted    Status = "COMPLETED"
	StatusCompensating Status = "COMPENSATING"
	StatusFailed       Status = "FAILED"
)

// SagaLog is a single row in the order_saga_logs table, a point-in-time
// snapshot of one saga execution.
type SagaLog struct {
	// SagaID is the order reference, so the log joins with business data.
	SagaID string

	// Status is the lifecycle state at the time this row was written.
	Status Status

	// CurrentStep is the step that was just executed or failed,
	// e.g. "charge-payment". Empty on STARTED and COMPLETED rows.
	CurrentStep string

	// Payload is the JSON-serialized input that started the saga,
	// written once on the STARTED row.
	Payload string

	// ErrorMessages is a JSON array of failure details, one entry per
	// failed step or failed compensation.
	ErrorMessages string

	// TraceID is the W3C trace id of the active span when this row was
	// written; SpanID pinpoints the exact operation within the trace.
	TraceID string
	SpanID  string

	// UpdatedAt is the wall-clock time of this entry.
	UpdatedAt time.Time
}
