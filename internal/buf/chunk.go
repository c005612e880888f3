// Package buf implements the per-stream chunk pool and the tri-owned typed
// buffer (PRIVATE/SHARED/ALIEN) that the output queue is built from.
package buf

import (
	"h3stream/internal/alloc"
	"h3stream/internal/herr"
	"h3stream/internal/ring"
)

// ChunkSize is the fixed size of every chunk the pool allocates. It must be
// >= the largest single SHARED write ever requested via EnsureChunk.
const ChunkSize = 1024

// Chunk is a fixed-size byte region carved up by contiguous SHARED writes.
// begin/last/end mirror the C-like cursor triple from the source design:
// begin is the start of unconsumed data, last is one past the
// most-recently-written byte, end is one past the allocated region.
type Chunk struct {
	mem   []byte
	begin int
	last  int
	end   int
}

func newChunk(mem []byte) *Chunk {
	return &Chunk{mem: mem, begin: 0, last: 0, end: len(mem)}
}

// Free reports the number of bytes still available for writing.
func (c *Chunk) Free() int { return c.end - c.last }

// Last returns the chunk's current write cursor.
func (c *Chunk) Last() int { return c.last }

// Bytes returns the slice [from, to) of the chunk's backing memory.
func (c *Chunk) Bytes(from, to int) []byte { return c.mem[from:to] }

// Reserve carves out n bytes starting at the current write cursor and
// advances it, returning the carved slice and its [begin,end) offsets
// within the chunk.
func (c *Chunk) Reserve(n int) (slice []byte, begin, end int) {
	begin = c.last
	end = begin + n
	c.last = end
	return c.mem[begin:end], begin, end
}

// Pool is a per-stream FIFO of chunks from which SHARED writes are carved.
// Only the head chunk may ever be freed (§4.3 invariant): chunks are
// allocated in order and their SHARED tbufs are popped from outq in order,
// so nothing later in the FIFO can be fully acked before the head is.
type Pool struct {
	chunks    ring.Ring[*Chunk]
	allocator alloc.Allocator
	tracker   *alloc.Tracker
}

// NewPool creates an empty chunk pool using the given allocator and
// accounting tracker (either may be nil to use sane defaults).
func NewPool(allocator alloc.Allocator, tracker *alloc.Tracker) *Pool {
	if allocator == nil {
		allocator = alloc.Default
	}
	return &Pool{allocator: allocator, tracker: tracker}
}

// Head returns the head (oldest) chunk, or nil if the pool is empty.
func (p *Pool) Head() *Chunk {
	if p.chunks.Empty() {
		return nil
	}
	return p.chunks.Front()
}

// Tail returns the most recently allocated chunk, or nil if the pool is
// empty.
func (p *Pool) Tail() *Chunk {
	if p.chunks.Empty() {
		return nil
	}
	return p.chunks.At(p.chunks.Len() - 1)
}

// Len reports how many chunks are currently live in the pool.
func (p *Pool) Len() int { return p.chunks.Len() }

// EnsureChunk guarantees the tail chunk has at least need bytes of free
// space, allocating a new ChunkSize chunk and appending it if not. need
// must not exceed ChunkSize.
func (p *Pool) EnsureChunk(need int) (*Chunk, error) {
	if need > ChunkSize {
		return nil, herr.New(herr.InvalidArgument, "buf: need exceeds chunk size")
	}
	if tail := p.Tail(); tail != nil && tail.Free() >= need {
		return tail, nil
	}
	mem, err := p.allocator.Malloc(ChunkSize)
	if err != nil {
		return nil, herr.Wrap(herr.NoMem, "buf: chunk allocation failed", err)
	}
	c := newChunk(mem)
	p.chunks.PushBack(c)
	if p.tracker != nil {
		p.tracker.Increment(ChunkSize)
	}
	return c, nil
}

// FreeAll frees every chunk still held by the pool unconditionally,
// regardless of ack state. Used only on stream teardown (spec §5), where
// outstanding ALIEN data is abandoned and SHARED/PRIVATE accounting no
// longer matters.
func (p *Pool) FreeAll() {
	for p.chunks.Len() > 0 {
		c := p.chunks.PopFront()
		p.allocator.Free(c.mem)
		if p.tracker != nil {
			p.tracker.Decrement(ChunkSize)
		}
	}
}

// ReleaseHeadIfDrained frees and pops the head chunk iff it is fully
// consumed (its last byte has been acked, tracked by the caller passing
// the chunk's own Last() as ackedLast). The pool does not track references
// into the chunk; that ackedLast covers every write is the only check.
// Returns true if a chunk was released.
func (p *Pool) ReleaseHeadIfDrained(ackedLast int) bool {
	head := p.Head()
	if head == nil {
		return false
	}
	if ackedLast < head.last {
		return false
	}
	p.chunks.PopFront()
	p.allocator.Free(head.mem)
	if p.tracker != nil {
		p.tracker.Decrement(ChunkSize)
	}
	return true
}
