package ring

import "testing"

func TestPushPopOrder(t *testing.T) {
	var r Ring[int]
	for i := 0; i < 5; i++ {
		r.PushBack(i)
	}
	for i := 0; i < 5; i++ {
		if got := r.PopFront(); got != i {
			t.Fatalf("PopFront = %d, want %d", got, i)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d, want 0", r.Len())
	}
}

// Exercises reserve's rotate-into-low-half path: fill past several growths
// while interleaving pops so head wraps before a growth occurs.
func TestGrowthPreservesOrderAndIndex(t *testing.T) {
	var r Ring[int]
	var want []int
	for round := 0; round < 20; round++ {
		for i := 0; i < 3; i++ {
			v := round*3 + i
			r.PushBack(v)
			want = append(want, v)
		}
		if round%2 == 0 && len(want) > 0 {
			got := r.PopFront()
			if got != want[0] {
				t.Fatalf("PopFront = %d, want %d", got, want[0])
			}
			want = want[1:]
		}
		for i := 0; i < r.Len(); i++ {
			if r.At(i) != want[i] {
				t.Fatalf("At(%d) = %d, want %d", i, r.At(i), want[i])
			}
		}
	}
}

func TestCapacityIsPowerOfTwo(t *testing.T) {
	var r Ring[int]
	for i := 0; i < 100; i++ {
		r.PushBack(i)
		c := r.Cap()
		if c&(c-1) != 0 {
			t.Fatalf("Cap() = %d is not a power of two", c)
		}
	}
}

func TestSetAt(t *testing.T) {
	var r Ring[string]
	r.PushBack("a")
	r.PushBack("b")
	r.SetAt(1, "c")
	if r.At(1) != "c" {
		t.Fatalf("At(1) = %q, want %q", r.At(1), "c")
	}
}
