// Package cancellog defines the durable audit trail for cancellation
// submissions.
//
// Every transition of the cancellation prompt is appended as an immutable
// row. The log serves two purposes:
//
//  1. Observability: support can see exactly what a customer attempted and
//     correlate it with the distributed trace via the trace_id field.
//
//  2. Dispute handling: a cancellation the backend rejected still leaves a
//     record of when it was requested and why.
package cancellog

import "time"

// State is the prompt transition being recorded.
type State string

const (
	StateOpened     State = "OPENED"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
	StateReplaced   State = "REPLACED"
)

// Entry is a single row in the cancellation_logs table: a point-in-time
// snapshot of one cancellation request.
type Entry struct {
	// RequestID identifies one open prompt. A new ID is minted each time the
	// prompt is opened, so replaced requests stay distinguishable in the log.
	RequestID string

	// OrderID is the order the customer asked to cancel.
	OrderID string

	// State is the prompt transition at the time this row was written.
	State State

	// Reason is the customer-supplied cancellation reason. Empty until the
	// submit transition.
	Reason string

	// ErrorMessage holds the submission failure, if any.
	ErrorMessage string

	// TraceID is the W3C trace ID of the OpenTelemetry span active when this
	// row was written, so a log row can be joined with the full trace.
	TraceID string

	// SpanID pinpoints the exact span within the trace.
	SpanID string

	// UpdatedAt is the wall-clock time of this transition.
	UpdatedAt time.Time
}
