// Package priority implements the dependency tree the scheduler glue
// (spec §4.10) consults: schedule/unschedule/squash and the
// active-descendant query. Spec §1 treats the tree's internal structure as
// an external collaborator; this is this module's reference implementation,
// generalized from a bare HTTP/2 stream-ID dependency map (grounded on the
// teacher's stream-priority tree) to the spec's {Type, ID} node key so
// PUSH_ID and PLACEHOLDER nodes — which never correspond to a real stream —
// can be scheduled alongside STREAM nodes.
package priority

import "sync"

// NodeType classifies what a priority Node stands for.
type NodeType uint8

const (
	TypeStream NodeType = iota
	TypePushID
	TypePlaceholder
	TypeRoot
)

// Key identifies a node uniquely within one Tree.
type Key struct {
	Type NodeType
	ID   uint64
}

// node holds one entry's scheduling state and dependency-tree position.
type node struct {
	key      Key
	seq      uint64 // monotonic sequence number, used to break weight ties FIFO-fair
	weight   uint32
	parent   Key
	hasParent bool
	scheduled bool
	children  map[Key]bool
}

// Tree is a reference implementation of the priority engine the stream
// package schedules into. It is safe for concurrent use only insofar as
// the spec requires (§5: all mutation is expected to happen on one logical
// executor); the mutex here guards against accidental concurrent test
// access rather than implementing a concurrent scheduler.
type Tree struct {
	mu       sync.Mutex
	nodes    map[Key]*node
	nextSeq  uint64
	rootKey  Key
}

// NewTree creates a tree with a single ROOT node that every other node is
// (by default) a descendant of.
func NewTree() *Tree {
	t := &Tree{nodes: make(map[Key]*node)}
	t.rootKey = Key{Type: TypeRoot, ID: 0}
	t.nodes[t.rootKey] = &node{key: t.rootKey, children: make(map[Key]bool)}
	return t
}

// RootKey returns the tree's root node key.
func (t *Tree) RootKey() Key { return t.rootKey }

func (t *Tree) ensure(k Key) *node {
	n, ok := t.nodes[k]
	if !ok {
		n = &node{key: k, children: make(map[Key]bool)}
		t.nodes[k] = n
		t.setParentLocked(n, t.rootKey)
	}
	return n
}

func (t *Tree) setParentLocked(n *node, parent Key) {
	if n.hasParent {
		if old, ok := t.nodes[n.parent]; ok {
			delete(old.children, n.key)
		}
	}
	n.parent, n.hasParent = parent, true
	if p, ok := t.nodes[parent]; ok {
		p.children[n.key] = true
	}
}

// SetParent establishes child as a dependent of parent, creating either
// node if it doesn't exist yet. A node not explicitly parented hangs
// directly off ROOT.
func (t *Tree) SetParent(child, parent Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c := t.ensure(child)
	t.ensure(parent)
	t.setParentLocked(c, parent)
}

// Schedule marks k (creating it if necessary) as having runnable work,
// weighted by weightDelta accumulated since it was last scheduled
// (spec §4.10: "weighted by accumulated unscheduled_nwrite since last
// schedule"). Calling Schedule again before Unschedule/Squash just adds to
// the node's weight.
func (t *Tree) Schedule(k Key, weightDelta uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.ensure(k)
	if !n.scheduled {
		t.nextSeq++
		n.seq = t.nextSeq
	}
	n.scheduled = true
	n.weight += weightDelta
}

// IsScheduled reports whether k currently has runnable work queued.
func (t *Tree) IsScheduled(k Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.nodes[k]
	return ok && n.scheduled
}

// Unschedule clears k's runnable flag and resets its accumulated weight,
// without removing it from the tree (its dependency relationships survive
// so a later re-Schedule resumes fair weighting against siblings).
func (t *Tree) Unschedule(k Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n, ok := t.nodes[k]; ok {
		n.scheduled = false
		n.weight = 0
	}
}

// Squash removes k from the tree entirely, re-parenting any children onto
// k's former parent so the tree stays connected (mirrors the teacher's
// RemoveStream dependency-reattachment).
func (t *Tree) Squash(k Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.nodes[k]
	if !ok {
		return
	}
	for childKey := range n.children {
		if child, ok := t.nodes[childKey]; ok {
			t.setParentLocked(child, n.parent)
		}
	}
	if n.hasParent {
		if p, ok := t.nodes[n.parent]; ok {
			delete(p.children, k)
		}
	}
	delete(t.nodes, k)
}

// HasActiveDescendant reports whether any descendant of k (not k itself)
// is currently scheduled.
func (t *Tree) HasActiveDescendant(k Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.nodes[k]
	if !ok {
		return false
	}
	return t.anyScheduledBelowLocked(n, make(map[Key]bool))
}

func (t *Tree) anyScheduledBelowLocked(n *node, visited map[Key]bool) bool {
	for childKey := range n.children {
		if visited[childKey] {
			continue
		}
		visited[childKey] = true
		child, ok := t.nodes[childKey]
		if !ok {
			continue
		}
		if child.scheduled {
			return true
		}
		if t.anyScheduledBelowLocked(child, visited) {
			return true
		}
	}
	return false
}

// Weight returns k's currently accumulated schedule weight, or 0 if it is
// not scheduled or unknown.
func (t *Tree) Weight(k Key) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n, ok := t.nodes[k]; ok {
		return n.weight
	}
	return 0
}
