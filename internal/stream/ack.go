package stream

import (
	"h3stream/internal/buf"
	"h3stream/internal/metrics"
)

// AddAckOffset records that the peer has acknowledged n additional bytes,
// walking from the outq head and consuming entries whose length is
// covered by the newly-acked range (spec §4.7). It returns the first
// error from an acked_data callback, if any; callback errors are fatal
// per spec §7 (the caller must not invoke this stream again).
func (s *Stream) AddAckOffset(n int) error {
	s.AckOffset += n
	metrics.BytesAcked.Add(float64(n))
	remaining := n

	for remaining > 0 && s.Outq.Len() > 0 {
		head := s.Outq.Front()
		entryTotal := head.TotalLen()
		avail := entryTotal - s.AckDone
		if avail <= 0 {
			break
		}
		consume := remaining
		if consume > avail {
			consume = avail
		}

		if head.Kind == buf.Alien && s.AckedData != nil {
			if err := s.AckedData(s.ID, consume); err != nil {
				return err
			}
		}

		s.AckDone += consume
		remaining -= consume

		if s.AckDone < entryTotal {
			// Partial ack of the head entry; it stays at the front for the
			// next call.
			break
		}

		// Entry fully acked.
		wasAtCursor := s.OutqIdx == 0
		switch head.Kind {
		case buf.Private:
			s.allocator.Free(head.Buf)
		case buf.Shared:
			if headChunk := s.Chunks.Head(); headChunk != nil && head.Last == headChunk.Last() {
				s.Chunks.ReleaseHeadIfDrained(head.Last)
			}
		case buf.Alien:
			// nothing to free
		}
		s.Outq.PopFront()
		s.AckDone = 0
		if s.OutqIdx > 0 {
			s.OutqIdx--
		}
		if wasAtCursor {
			s.OutqOffset = 0
			return nil
		}
	}
	return nil
}
