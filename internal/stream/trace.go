package stream

import (
	"context"

	"h3stream/internal/tracing"
)

// FillOutqTraced wraps FillOutq in a span, for transports that already
// carry a context.Context (spec §4.4; ambient observability per §5 shared
// resources).
func (s *Stream) FillOutqTraced(ctx context.Context) error {
	_, span := tracing.StartFillOutq(ctx, s.ID)
	err := s.FillOutq()
	tracing.End(span, err)
	return err
}

// WritevTraced wraps Writev in a span.
func (s *Stream) WritevTraced(ctx context.Context, veccnt int) (vecs []Vec, fin bool) {
	_, span := tracing.StartWritev(ctx, s.ID)
	vecs, fin = s.Writev(veccnt)
	tracing.End(span, nil)
	return vecs, fin
}

// AddAckOffsetTraced wraps AddAckOffset in a span.
func (s *Stream) AddAckOffsetTraced(ctx context.Context, n int) error {
	_, span := tracing.StartAck(ctx, s.ID, n)
	err := s.AddAckOffset(n)
	tracing.End(span, err)
	return err
}
