package stream

import "h3stream/internal/buf"

// InqBufSize is the fixed size of each inbound accumulation buffer (spec
// §4.8 "allocate new 16 KiB buffers as needed").
const InqBufSize = 16 * 1024

// BufferData appends data to the tail inbound buffer's free space,
// allocating new InqBufSize PRIVATE buffers as needed to hold the rest
// (spec §4.8). The frame-level parser that later drains inq is out of
// scope; this only accumulates.
func (s *Stream) BufferData(data []byte) error {
	for len(data) > 0 {
		tail := s.inqTail()
		if tail == nil {
			mem, err := s.allocator.Malloc(InqBufSize)
			if err != nil {
				return err
			}
			tail = buf.NewPrivate(mem)
			tail.Last = 0
			s.Inq.PushBack(tail)
		}
		free := len(tail.Buf) - tail.Last
		if free == 0 {
			mem, err := s.allocator.Malloc(InqBufSize)
			if err != nil {
				return err
			}
			tail = buf.NewPrivate(mem)
			tail.Last = 0
			s.Inq.PushBack(tail)
			free = len(tail.Buf)
		}
		n := len(data)
		if n > free {
			n = free
		}
		copy(tail.Buf[tail.Last:tail.Last+n], data[:n])
		tail.Last += n
		data = data[n:]
	}
	return nil
}

func (s *Stream) inqTail() *buf.TypedBuf {
	if s.Inq.Len() == 0 {
		return nil
	}
	return s.Inq.At(s.Inq.Len() - 1)
}

// BufferedDatalen sums the written length of every inbound buffer.
func (s *Stream) BufferedDatalen() int {
	total := 0
	for i := 0; i < s.Inq.Len(); i++ {
		total += s.Inq.At(i).TotalLen()
	}
	return total
}

// ClearBufferedData frees every inbound buffer.
func (s *Stream) ClearBufferedData() {
	for s.Inq.Len() > 0 {
		tb := s.Inq.PopFront()
		tb.Drop(s.allocator)
	}
}
