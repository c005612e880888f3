// Package alloc provides the injectable allocator the engine uses for
// chunk and buffer storage, plus the monotonic allocation-size accounting
// used to detect under-release on stream destruction (spec §5).
package alloc

import "sync/atomic"

// Allocator is the host allocator the stream engine is built on. The
// default implementation (Default) delegates to the Go runtime; tests may
// substitute one that fails on demand to exercise NOMEM paths.
type Allocator interface {
	Malloc(size int) ([]byte, error)
	Calloc(size int) ([]byte, error)
	Realloc(buf []byte, size int) ([]byte, error)
	Free(buf []byte)
}

type defaultAllocator struct{}

// Default is the host-backed Allocator used when no other is configured.
var Default Allocator = defaultAllocator{}

func (defaultAllocator) Malloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, errNegativeSize
	}
	return make([]byte, size), nil
}

func (defaultAllocator) Calloc(size int) ([]byte, error) {
	// make([]byte, n) is already zeroed; Calloc exists as a distinct
	// entry point for allocators that need to distinguish the two (e.g.
	// a pooling allocator that must clear reused memory explicitly).
	return defaultAllocator{}.Malloc(size)
}

func (defaultAllocator) Realloc(buf []byte, size int) ([]byte, error) {
	if size <= cap(buf) {
		return buf[:size], nil
	}
	nb := make([]byte, size)
	copy(nb, buf)
	return nb, nil
}

func (defaultAllocator) Free([]byte) {
	// Nothing to do: the Go GC reclaims the backing array once
	// unreferenced. Free exists so a custom Allocator can pool buffers.
}

type negativeSizeError struct{}

func (negativeSizeError) Error() string { return "alloc: negative size" }

var errNegativeSize error = negativeSizeError{}

// Tracker accounts for the current size of all memory a single connection
// (or test) has allocated through an Allocator, so Check can detect
// under-release: code that increments but never decrements, or decrements
// past what was ever incremented.
//
// previous holds the total as of the last Checkpoint; current is the live
// total. Check asserts two things: current is not negative (a Decrement ran
// with no matching prior Increment), and current is not below previous.
// Tracker keeps no per-stream attribution.
type Tracker struct {
	current  atomic.Int64
	previous int64 // snapshot taken by Checkpoint
}

// Increment records that n more bytes are now tracked as allocated.
func (t *Tracker) Increment(n int) { t.current.Add(int64(n)) }

// Decrement records that n bytes previously tracked as allocated have been
// freed.
func (t *Tracker) Decrement(n int) { t.current.Add(-int64(n)) }

// Current returns the current tracked total.
func (t *Tracker) Current() int64 { return t.current.Load() }

// Checkpoint snapshots the current total as the baseline for the next
// Check call.
func (t *Tracker) Checkpoint() { t.previous = t.current.Load() }

// Check reports whether accounting is consistent since the last
// Checkpoint: current must not be negative, and must be no lower
// than it was at the checkpoint (spec: "current >= previous") — a stream
// destruction sequence only ever frees what it or its ancestors allocated,
// so the running total can fall no further than where it started.
func (t *Tracker) Check() bool {
	cur := t.current.Load()
	return cur >= 0 && cur >= t.previous
}
