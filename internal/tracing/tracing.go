// Package tracing wraps the stream engine's hot paths in OpenTelemetry
// spans, grounded on the teacher's request-scoped tracing middleware
// (pkg/celeris/tracing.go). There is no inbound HTTP request to extract a
// parent context from here, so callers provide whatever context.Context
// they already carry (typically the connection's background context) and
// get back a child context plus the span to End.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "h3stream"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartFillOutq opens a span around one fill_outq drive of a stream's frq.
func StartFillOutq(ctx context.Context, streamID uint64) (context.Context, trace.Span) {
	return tracer().Start(ctx, "fill_outq",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int64("h3stream.stream_id", int64(streamID))),
	)
}

// StartWritev opens a span around a writev preview of a stream's outq.
func StartWritev(ctx context.Context, streamID uint64) (context.Context, trace.Span) {
	return tracer().Start(ctx, "writev",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int64("h3stream.stream_id", int64(streamID))),
	)
}

// StartAck opens a span around one add_ack_offset call.
func StartAck(ctx context.Context, streamID uint64, n int) (context.Context, trace.Span) {
	return tracer().Start(ctx, "add_ack_offset",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("h3stream.stream_id", int64(streamID)),
			attribute.Int("h3stream.ack_bytes", n),
		),
	)
}

// End records err on span (if non-nil) and closes it, mirroring the
// teacher's status-recording convention in TracingWithConfig.
func End(span trace.Span, err error) {
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	default:
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
