package buf

import "h3stream/internal/alloc"

// Kind is the ownership discriminator carried by every TypedBuf entry in an
// output queue.
type Kind uint8

const (
	// Private means the tbuf owns its bytes outright; dropping it frees
	// them.
	Private Kind = iota
	// Shared means the tbuf's bytes live inside a chunk owned by the
	// stream's chunk pool; dropping it may free the chunk if this was
	// the chunk's last live reference (§4.7).
	Shared
	// Alien means the tbuf wraps caller-owned memory (application DATA);
	// dropping it frees nothing, but acked bytes must be reported via the
	// stream's acked_data callback.
	Alien
)

func (k Kind) String() string {
	switch k {
	case Private:
		return "PRIVATE"
	case Shared:
		return "SHARED"
	case Alien:
		return "ALIEN"
	default:
		return "UNKNOWN"
	}
}

// TypedBuf is one entry of an output (or input) queue: a [begin,pos,last)
// window into some backing memory, tagged with a Kind that determines what
// happens when the entry is popped. pos is the logical read cursor used by
// add_outq_offset; begin/last bound the valid, written region.
type TypedBuf struct {
	Kind  Kind
	Buf   []byte // PRIVATE/ALIEN: the owned/borrowed memory; SHARED: the chunk's backing array
	Begin int
	Pos   int
	Last  int

	Chunk *Chunk // set only for Shared entries
}

// Len returns the number of unread bytes remaining in the entry ([pos, last)).
func (t *TypedBuf) Len() int { return t.Last - t.Pos }

// TotalLen returns the entry's full written length ([begin, last)),
// irrespective of how much has already been consumed by pos.
func (t *TypedBuf) TotalLen() int { return t.Last - t.Begin }

// Bytes returns the entry's unread bytes.
func (t *TypedBuf) Bytes() []byte { return t.Buf[t.Pos:t.Last] }

// NewPrivate wraps an owned byte slice as a PRIVATE entry.
func NewPrivate(b []byte) *TypedBuf {
	return &TypedBuf{Kind: Private, Buf: b, Begin: 0, Pos: 0, Last: len(b)}
}

// NewAlien wraps caller-owned memory as an ALIEN entry. The slice is never
// copied or freed by the engine.
func NewAlien(b []byte) *TypedBuf {
	return &TypedBuf{Kind: Alien, Buf: b, Begin: 0, Pos: 0, Last: len(b)}
}

// NewShared wraps a carved region of chunk as a SHARED entry.
func NewShared(chunk *Chunk, begin, end int) *TypedBuf {
	return &TypedBuf{
		Kind:  Shared,
		Buf:   chunk.mem,
		Begin: begin,
		Pos:   begin,
		Last:  end,
		Chunk: chunk,
	}
}

// Drop releases t's resources per its Kind:
//   - PRIVATE frees Buf via allocator.
//   - SHARED frees nothing itself (no reference count is kept); if t.Last
//     equals the chunk's own Last() (i.e. t was the tail-most reference
//     into that chunk) the chunk becomes eligible for release by the
//     owning Pool once it is also the FIFO head (§4.7 — Drop itself does
//     not pop the chunk; the caller does that via Pool.ReleaseHeadIfDrained
//     using the returned chunkDrainedTo value).
//   - ALIEN frees nothing.
//
// It returns the chunk (if Shared) and the offset up to which that chunk
// may now be considered drained, for the caller to hand to
// Pool.ReleaseHeadIfDrained.
func (t *TypedBuf) Drop(allocator alloc.Allocator) (drainedChunk *Chunk, drainedTo int) {
	switch t.Kind {
	case Private:
		if allocator != nil {
			allocator.Free(t.Buf)
		}
	case Shared:
		return t.Chunk, t.Last
	case Alien:
		// nothing to free
	}
	return nil, 0
}
