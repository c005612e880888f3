package stream

// Vec is one (base, len) descriptor into an outq entry's backing memory,
// as produced by Writev (spec §4.6).
type Vec struct {
	Base []byte
	Len  int
}

// Writev produces up to veccnt descriptors covering outq[outq_idx..]
// starting at outq_offset inside that entry. It does not mutate the
// stream — the transport must call AddOutqOffset with exactly the prefix
// length it consumed. fin is true iff frq is empty, the walk reached the
// end of outq, and WRITE_END_STREAM is set (spec §4.6).
func (s *Stream) Writev(veccnt int) (vecs []Vec, fin bool) {
	idx := s.OutqIdx
	offset := s.OutqOffset
	for len(vecs) < veccnt && idx < s.Outq.Len() {
		entry := s.Outq.At(idx)
		b := entry.Bytes()
		if offset > 0 {
			b = b[offset:]
		}
		if len(b) > 0 {
			vecs = append(vecs, Vec{Base: b, Len: len(b)})
		}
		idx++
		offset = 0
	}
	fin = s.FRQ.Len() == 0 && idx >= s.Outq.Len() && s.Flags.has(FlagWriteEndStream)
	return vecs, fin
}

// AddOutqOffset advances the logical read cursor by n bytes: walk from
// outq_idx consuming entries whose length is <= the remaining offset,
// stopping in the middle of the first entry that isn't. unsent_bytes is
// decremented by n (spec §4.6).
func (s *Stream) AddOutqOffset(n int) {
	s.UnsentBytes -= n
	remaining := n
	for remaining > 0 && s.OutqIdx < s.Outq.Len() {
		entry := s.Outq.At(s.OutqIdx)
		avail := entry.Len() - s.OutqOffset
		if remaining < avail {
			s.OutqOffset += remaining
			return
		}
		remaining -= avail
		s.OutqIdx++
		s.OutqOffset = 0
	}
}
