package cancellog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	// TraceID is the W3C trace ID (32 lowercase hex chars).
	// Empty if no active span is found in the context.
	TraceID string

	// SpanID is the W3C span ID (16 lowercase hex chars).
	SpanID string
}

// ExtractTraceInfo reads the active OpenTelemetry span from ctx and returns
// its identifiers as hex strings. The otelhttp handler registered on the
// router creates the server-side span; contexts without one (unit tests)
// yield empty strings.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds a log entry with the trace info extracted from ctx.
func NewEntry(ctx context.Context, requestID, orderID string, state State, reason, errMsg string) *Entry {
	ti := ExtractTraceInfo(ctx)
	return &Entry{
		RequestID:    requestID,
		OrderID:      orderID,
		State:        state,
		Reason:       reason,
		ErrorMessage: errMsg,
		TraceID:      ti.TraceID,
		SpanID:       ti.SpanID,
		UpdatedAt:    time.Now().UTC(),
	}
}
