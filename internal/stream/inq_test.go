package stream

import "testing"

func TestBufferDataSingleChunk(t *testing.T) {
	s := newTestStream(1)
	if err := s.BufferData([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if got := s.BufferedDatalen(); got != 5 {
		t.Fatalf("buffered len = %d, want 5", got)
	}
	if s.Inq.Len() != 1 {
		t.Fatalf("expected a single inbound buffer, got %d", s.Inq.Len())
	}
}

func TestBufferDataSpansMultipleBuffers(t *testing.T) {
	s := newTestStream(1)
	big := make([]byte, InqBufSize+10)
	for i := range big {
		big[i] = byte(i)
	}
	if err := s.BufferData(big); err != nil {
		t.Fatal(err)
	}
	if s.Inq.Len() != 2 {
		t.Fatalf("expected 2 inbound buffers, got %d", s.Inq.Len())
	}
	if got := s.BufferedDatalen(); got != len(big) {
		t.Fatalf("buffered len = %d, want %d", got, len(big))
	}
	if s.Inq.At(0).TotalLen() != InqBufSize {
		t.Fatalf("first buffer should be full at %d, got %d", InqBufSize, s.Inq.At(0).TotalLen())
	}
	if s.Inq.At(1).TotalLen() != 10 {
		t.Fatalf("second buffer should hold 10 bytes, got %d", s.Inq.At(1).TotalLen())
	}
}

func TestBufferDataEmptyInputIsNoop(t *testing.T) {
	s := newTestStream(1)
	if err := s.BufferData(nil); err != nil {
		t.Fatal(err)
	}
	if s.Inq.Len() != 0 {
		t.Fatalf("expected no buffers allocated for empty input, got %d", s.Inq.Len())
	}
}

func TestBufferDataFillsTailBeforeAllocating(t *testing.T) {
	s := newTestStream(1)
	if err := s.BufferData(make([]byte, InqBufSize-1)); err != nil {
		t.Fatal(err)
	}
	if err := s.BufferData([]byte{0xFF}); err != nil {
		t.Fatal(err)
	}
	if s.Inq.Len() != 1 {
		t.Fatalf("second call should have filled the existing tail buffer, got %d buffers", s.Inq.Len())
	}
	if got := s.BufferedDatalen(); got != InqBufSize {
		t.Fatalf("buffered len = %d, want %d", got, InqBufSize)
	}
}

func TestClearBufferedData(t *testing.T) {
	s := newTestStream(1)
	if err := s.BufferData([]byte("some bytes")); err != nil {
		t.Fatal(err)
	}
	s.ClearBufferedData()
	if s.Inq.Len() != 0 {
		t.Fatalf("expected inq cleared, got %d buffers", s.Inq.Len())
	}
	if got := s.BufferedDatalen(); got != 0 {
		t.Fatalf("buffered len = %d, want 0", got)
	}
}
