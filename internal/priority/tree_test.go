package priority

import "testing"

func TestScheduleUnschedule(t *testing.T) {
	tr := NewTree()
	k := Key{Type: TypeStream, ID: 4}
	if tr.IsScheduled(k) {
		t.Fatal("new node should not be scheduled")
	}
	tr.Schedule(k, 3)
	if !tr.IsScheduled(k) {
		t.Fatal("expected scheduled after Schedule")
	}
	if tr.Weight(k) != 3 {
		t.Fatalf("Weight = %d, want 3", tr.Weight(k))
	}
	tr.Schedule(k, 2)
	if tr.Weight(k) != 5 {
		t.Fatalf("Weight = %d, want 5 after accumulation", tr.Weight(k))
	}
	tr.Unschedule(k)
	if tr.IsScheduled(k) || tr.Weight(k) != 0 {
		t.Fatal("expected cleared state after Unschedule")
	}
}

func TestHasActiveDescendant(t *testing.T) {
	tr := NewTree()
	parent := Key{Type: TypeStream, ID: 1}
	child := Key{Type: TypeStream, ID: 3}
	tr.SetParent(child, parent)
	if tr.HasActiveDescendant(parent) {
		t.Fatal("no descendant scheduled yet")
	}
	tr.Schedule(child, 1)
	if !tr.HasActiveDescendant(parent) {
		t.Fatal("expected active descendant once child scheduled")
	}
	if tr.HasActiveDescendant(child) {
		t.Fatal("a node is not its own descendant")
	}
}

func TestSquashReparentsChildren(t *testing.T) {
	tr := NewTree()
	grandparent := Key{Type: TypeStream, ID: 1}
	parent := Key{Type: TypeStream, ID: 2}
	child := Key{Type: TypeStream, ID: 3}
	tr.SetParent(parent, grandparent)
	tr.SetParent(child, parent)
	tr.Schedule(child, 1)

	tr.Squash(parent)

	if !tr.HasActiveDescendant(grandparent) {
		t.Fatal("expected child reparented under grandparent to still count as a descendant")
	}
}

func TestPushIDAndPlaceholderNodesSchedule(t *testing.T) {
	tr := NewTree()
	push := Key{Type: TypePushID, ID: 7}
	ph := Key{Type: TypePlaceholder, ID: 1}
	tr.Schedule(push, 1)
	tr.Schedule(ph, 1)
	if !tr.IsScheduled(push) || !tr.IsScheduled(ph) {
		t.Fatal("expected PUSH_ID and PLACEHOLDER nodes to be schedulable")
	}
}
