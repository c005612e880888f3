package stream

import (
	"testing"

	"h3stream/internal/buf"
	"h3stream/internal/herr"
	"h3stream/internal/httpframe"
	"h3stream/internal/qpack"
)

func newTestStream(id uint64) *Stream {
	return NewStream(id, RoleRequest, qpack.NewLiteralEncoder(), nil, nil, nil)
}

func TestOutqAddCoalescesAdjacentShared(t *testing.T) {
	s := newTestStream(4)
	chunk, err := s.Chunks.EnsureChunk(4)
	if err != nil {
		t.Fatal(err)
	}
	slice1, b1, e1 := chunk.Reserve(2)
	copy(slice1, []byte{0xAA, 0xBB})
	slice2, b2, e2 := chunk.Reserve(2)
	copy(slice2, []byte{0xCC, 0xDD})

	s.OutqAdd(buf.NewShared(chunk, b1, e1))
	s.OutqAdd(buf.NewShared(chunk, b2, e2))

	if s.Outq.Len() != 1 {
		t.Fatalf("expected coalesced single entry, got %d", s.Outq.Len())
	}
	got := s.Outq.Front()
	if got.Last != e2 {
		t.Fatalf("last = %d, want %d", got.Last, e2)
	}
	if s.UnsentBytes != 4 {
		t.Fatalf("unsent bytes = %d, want 4", s.UnsentBytes)
	}
}

func TestOutqAddDoesNotCoalesceNonAdjacent(t *testing.T) {
	s := newTestStream(4)
	chunk, _ := s.Chunks.EnsureChunk(4)
	_, b1, e1 := chunk.Reserve(1)
	_, b2, e2 := chunk.Reserve(1)
	_ = b1

	s.OutqAdd(buf.NewShared(chunk, b1, e1))
	s.OutqAdd(buf.NewShared(chunk, b2+1, e2+1)) // deliberately non-adjacent
	if s.Outq.Len() != 2 {
		t.Fatalf("expected 2 separate entries, got %d", s.Outq.Len())
	}
}

// S4: outq [S1:2 bytes, A:5 bytes]; add_outq_offset(7) then
// add_ack_offset(2) pops S1 only; add_ack_offset(5) invokes acked_data(5)
// and pops A.
func TestAddAckOffsetScenarioS4(t *testing.T) {
	s := newTestStream(4)
	chunk, _ := s.Chunks.EnsureChunk(2)
	slice, b, e := chunk.Reserve(2)
	copy(slice, []byte{0x01, 0x02})
	s.OutqAdd(buf.NewShared(chunk, b, e))

	alien := buf.NewAlien([]byte("hello"))
	s.OutqAdd(alien)

	var ackedArg int
	ackedCalls := 0
	s.AckedData = func(streamID uint64, n int) error {
		ackedCalls++
		ackedArg = n
		return nil
	}

	s.AddOutqOffset(7)

	if err := s.AddAckOffset(2); err != nil {
		t.Fatal(err)
	}
	if s.Outq.Len() != 1 {
		t.Fatalf("expected S1 popped, outq len = %d", s.Outq.Len())
	}
	if ackedCalls != 0 {
		t.Fatalf("expected no acked_data call yet, got %d", ackedCalls)
	}

	if err := s.AddAckOffset(5); err != nil {
		t.Fatal(err)
	}
	if s.Outq.Len() != 0 {
		t.Fatalf("expected A popped, outq len = %d", s.Outq.Len())
	}
	if ackedCalls != 1 || ackedArg != 5 {
		t.Fatalf("acked_data called %d times with %d, want 1 call with 5", ackedCalls, ackedArg)
	}
}

func TestWritevAndFin(t *testing.T) {
	s := newTestStream(4)
	chunk, _ := s.Chunks.EnsureChunk(2)
	slice, b, e := chunk.Reserve(2)
	copy(slice, []byte{0x01, 0x02})
	s.OutqAdd(buf.NewShared(chunk, b, e))
	s.Flags |= FlagWriteEndStream

	vecs, fin := s.Writev(16)
	if len(vecs) != 1 || vecs[0].Len != 2 {
		t.Fatalf("unexpected vecs: %+v", vecs)
	}
	if !fin {
		t.Fatal("expected fin=true: frq empty, outq exhausted, WRITE_END_STREAM set")
	}

	s.AddOutqOffset(2)
	if s.OutqIdx != 1 || s.OutqOffset != 0 {
		t.Fatalf("outq_idx=%d outq_offset=%d, want 1,0", s.OutqIdx, s.OutqOffset)
	}
}

// S2: frq_add(SETTINGS{local={0,0,0,0}}); fill_outq() -> outq contains one
// SHARED entry `04 00`.
func TestFillOutqSettingsScenarioS2(t *testing.T) {
	s := newTestStream(2)
	s.FrqAdd(&httpframe.FrameIntent{Kind: httpframe.IntentSettings, SettingsSnapshot: &httpframe.Settings{}})
	if err := s.FillOutq(); err != nil {
		t.Fatal(err)
	}
	if s.Outq.Len() != 1 {
		t.Fatalf("outq len = %d, want 1", s.Outq.Len())
	}
	got := s.Outq.Front().Bytes()
	want := []byte{0x04, 0x00}
	if string(got) != string(want) {
		t.Fatalf("got % x, want % x", got, want)
	}
	if s.FRQ.Len() != 0 {
		t.Fatal("expected the SETTINGS intent to be popped")
	}
}

// S3: frq_add(DATA{read=() -> ("hello",5,EOF)}); fill_outq() -> SHARED
// `00 05` then ALIEN "hello"; WRITE_END_STREAM set.
func TestFillOutqDataScenarioS3(t *testing.T) {
	s := newTestStream(4)
	s.FrqAdd(&httpframe.FrameIntent{
		Kind: httpframe.IntentData,
		ReadData: func() ([]byte, httpframe.DataFlags, error) {
			return []byte("hello"), httpframe.FlagEOF, nil
		},
	})
	if err := s.FillOutq(); err != nil {
		t.Fatal(err)
	}
	if s.Outq.Len() != 2 {
		t.Fatalf("outq len = %d, want 2", s.Outq.Len())
	}
	if s.Outq.At(0).Kind != buf.Shared || s.Outq.At(1).Kind != buf.Alien {
		t.Fatalf("expected [SHARED, ALIEN] entries")
	}
	if !s.Flags.has(FlagWriteEndStream) {
		t.Fatal("expected WRITE_END_STREAM set")
	}
	if s.FRQ.Len() != 0 {
		t.Fatal("expected DATA intent popped once EOF was reached")
	}
}

// S6: read_data returns WOULDBLOCK once, then (b"x",1,EOF) on re-entry.
func TestFillOutqDataScenarioS6(t *testing.T) {
	s := newTestStream(4)
	calls := 0
	s.FrqAdd(&httpframe.FrameIntent{
		Kind: httpframe.IntentData,
		ReadData: func() ([]byte, httpframe.DataFlags, error) {
			calls++
			if calls == 1 {
				return nil, 0, herr.ErrWouldBlock
			}
			return []byte("x"), httpframe.FlagEOF, nil
		},
	})

	if err := s.FillOutq(); err != nil {
		t.Fatal(err)
	}
	if s.Outq.Len() != 0 {
		t.Fatalf("expected empty outq after WOULDBLOCK, got %d", s.Outq.Len())
	}
	if !s.IsBlocked() {
		t.Fatal("expected the stream to be blocked")
	}
	if s.FRQ.Len() != 1 {
		t.Fatal("expected the DATA intent to remain at the head of frq")
	}

	s.ClearReadDataBlocked()
	if err := s.FillOutq(); err != nil {
		t.Fatal(err)
	}
	if s.Outq.Len() != 2 {
		t.Fatalf("outq len = %d, want 2 after unblocking", s.Outq.Len())
	}
	if s.FRQ.Len() != 0 {
		t.Fatal("expected the DATA intent popped after EOF")
	}
}
