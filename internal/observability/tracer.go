package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type TraceContext struct {
	TraceID string
	SpanID  string
}

// ExtractTrace returns nil when ctx carries no valid span.
func ExtractTrace(ctx context.Context) *TraceContext {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return nil
	}

	return &TraceContext{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}
