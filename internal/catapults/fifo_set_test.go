package catapults

import (
	"reflect"
	"testing"

	"github.com/diffsec/catapult/internal/candidates"
)

func ids(vals ...int) []candidates.NodeId {
	out := make([]candidates.NodeId, len(vals))
	for i, v := range vals {
		out[i] = candidates.NodeId(v)
	}
	return out
}

func TestFifoSetZeroCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for capacity 0")
		}
	}()
	NewFifoSet(0)
}

func TestFifoSetEvictionTrace(t *testing.T) {
	f := NewFifoSet(4)
	for _, v := range []int{1, 2, 3, 4, 2, 3, 5} {
		f.Insert(candidates.NodeId(v))
	}
	got := f.Snapshot()
	want := ids(4, 2, 3, 5)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFifoSetReinsertRefreshesPosition(t *testing.T) {
	f := NewFifoSet(3)
	f.Insert(1)
	f.Insert(2)
	f.Insert(3)
	f.Insert(1) // refresh 1 to newest
	got := f.Snapshot()
	want := ids(2, 3, 1)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFifoSetNeverHasDuplicates(t *testing.T) {
	f := NewFifoSet(3)
	for i := 0; i < 20; i++ {
		f.Insert(candidates.NodeId(i % 5))
	}
	seen := map[candidates.NodeId]bool{}
	for _, v := range f.Snapshot() {
		if seen[v] {
			t.Fatalf("duplicate %d found in %v", v, f.Snapshot())
		}
		seen[v] = true
	}
	if f.Len() > 3 {
		t.Fatalf("len %d exceeds capacity", f.Len())
	}
}

func TestFifoSetClear(t *testing.T) {
	f := NewFifoSet(2)
	f.Insert(1)
	f.Insert(2)
	f.Clear()
	if f.Len() != 0 {
		t.Fatalf("len after clear = %d, want 0", f.Len())
	}
	if got := f.Snapshot(); len(got) != 0 {
		t.Fatalf("snapshot after clear = %v, want empty", got)
	}
}
