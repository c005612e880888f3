package stream

import (
	"h3stream/internal/alloc"
	"h3stream/internal/buf"
	"h3stream/internal/httpfsm"
	"h3stream/internal/httpframe"
	"h3stream/internal/priority"
	"h3stream/internal/qpack"
	"h3stream/internal/ring"
)

// Flag bits carried on a Stream (spec §3).
type Flags uint8

const (
	FlagFCBlocked       Flags = 1 << iota
	FlagReadDataBlocked
	FlagWriteEndStream
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// AckedDataFunc is the application callback invoked when ALIEN bytes are
// acked (spec §6). Errors from it are fatal (spec §4.7).
type AckedDataFunc func(streamID uint64, nbytes int) error

// Stream is the unit of transport multiplexing: the owner of the four
// FIFOs, the accounting fields and the receive HTTP state that make up
// the engine's per-stream pipeline (spec §3).
type Stream struct {
	ID   uint64
	Role RoleTag

	PriorityKey priority.Key
	// PushNode, when non-nil, is the push-promise node this stream
	// schedules through instead of PriorityKey (spec §9 "Priority node
	// sharing").
	PushNode *priority.Key

	FRQ    ring.Ring[*httpframe.FrameIntent]
	Chunks *buf.Pool
	Outq   ring.Ring[*buf.TypedBuf]
	Inq    ring.Ring[*buf.TypedBuf]

	QPACKEncoder qpack.Encoder

	UnsentBytes       int
	OutqIdx           int
	OutqOffset        int
	AckOffset         int
	AckDone           int
	UnscheduledNwrite uint32

	Flags Flags

	FSM *httpfsm.Machine

	AckedData AckedDataFunc

	// RouteEncoderUpdate delivers QPACK dynamic-table update bytes to the
	// connection's QPACK-encoder control stream. It must never be called
	// with this stream's own outq (spec §4.5, §9 "QPACK cross-stream
	// write") — the connection wires this up when constructing the stream,
	// rather than handing streams references to each other.
	RouteEncoderUpdate func(updates []byte) error

	allocator alloc.Allocator
	tracker   *alloc.Tracker
}

// MinUnsentBytes bounds fill_outq's drain loop (spec §4.4): once unsent
// bytes reach this threshold, stop serializing more frames until the
// transport drains some via add_outq_offset.
const MinUnsentBytes = 64 * 1024

// MaxOutqLen bounds fill_outq's drain loop (spec §4.4).
const MaxOutqLen = 1024

// NewStream constructs a Stream ready to accept frq intents and inbound
// bytes. fsm may be nil for unidirectional control-role streams that never
// drive the receive HTTP state machine.
func NewStream(id uint64, role RoleTag, encoder qpack.Encoder, fsm *httpfsm.Machine, allocator alloc.Allocator, tracker *alloc.Tracker) *Stream {
	if allocator == nil {
		allocator = alloc.Default
	}
	return &Stream{
		ID:           id,
		Role:         role,
		PriorityKey:  priority.Key{Type: priority.TypeStream, ID: id},
		Chunks:       buf.NewPool(allocator, tracker),
		QPACKEncoder: encoder,
		FSM:          fsm,
		allocator:    allocator,
		tracker:      tracker,
	}
}

// SchedulingKey returns the priority node this stream schedules through:
// PushNode if set and the role is PUSH, else its own node (spec §4.10,
// §9 "Priority node sharing").
func (s *Stream) SchedulingKey() priority.Key {
	if s.PushNode != nil && s.Role == RolePush {
		return *s.PushNode
	}
	return s.PriorityKey
}

// Destroy releases every owned PRIVATE buffer, chunk and frq intent, and
// abandons outstanding ALIEN data without an ack callback (spec §5,
// connection-initiated teardown). The caller must squash this stream's
// priority node separately — the stream itself has no reference to the
// tree that owns it.
func (s *Stream) Destroy() {
	for s.Outq.Len() > 0 {
		tb := s.Outq.PopFront()
		tb.Drop(s.allocator)
	}
	for s.FRQ.Len() > 0 {
		s.FRQ.PopFront()
	}
	for s.Inq.Len() > 0 {
		tb := s.Inq.PopFront()
		tb.Drop(s.allocator)
	}
	s.Chunks.FreeAll()
}
