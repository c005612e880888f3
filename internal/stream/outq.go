package stream

import "h3stream/internal/buf"

// OutqAdd appends tb to the stream's output queue, coalescing it into the
// current tail entry when both are SHARED slices of the same chunk and tb
// begins exactly where the tail ends (spec §4.5 "outq_add coalescing",
// invariant 6). unsent_bytes is always incremented by tb's length,
// regardless of whether a merge happened.
func (s *Stream) OutqAdd(tb *buf.TypedBuf) {
	n := tb.Len()
	s.UnscheduledNwrite += uint32(n)
	if s.Outq.Len() > 0 {
		tailIdx := s.Outq.Len() - 1
		tail := s.Outq.At(tailIdx)
		if tail.Kind == buf.Shared && tb.Kind == buf.Shared &&
			tail.Chunk == tb.Chunk && tb.Begin == tail.Last {
			// tail is the same *TypedBuf stored in the ring; mutating it in
			// place extends the existing outq entry instead of pushing a
			// second one (spec §4.5, invariant 6).
			tail.Last = tb.Last
			s.UnsentBytes += n
			return
		}
	}
	s.Outq.PushBack(tb)
	s.UnsentBytes += n
}
