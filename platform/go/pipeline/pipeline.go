// Package pipeline carries the minimal contract shared by the activation
// pipeline stages: an error sink for failure reporting and a per-attempt
// trace id stored on the context.
package pipeline

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const ctxTraceID ctxKey = "ACTIVATION_TRACE_ID"

// ErrorSink receives exactly one report per failed stage invocation.
// Stages never raise past their boundary; every failure flows through here.
type ErrorSink interface {
	Report(ctx context.Context, err error)
}

// SinkFunc adapts a plain function to the ErrorSink interface.
type SinkFunc func(ctx context.Context, err error)

func (f SinkFunc) Report(ctx context.Context, err error) { f(ctx, err) }

// WithTraceID stores a trace id on the context, minting a fresh one when empty.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return context.WithValue(ctx, ctxTraceID, traceID)
}

// TraceID extracts the trace id from context, returning false when not present.
func TraceID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxTraceID).(string)
	return id, ok
}
