// Package catapults implements the bounded FIFO-with-set-semantics structure
// that caches recently useful beam-search start points per LSH bucket.
package catapults

import (
	"fmt"

	"github.com/diffsec/catapult/internal/candidates"
)

// FifoSet is a bounded, duplicate-free FIFO queue of node ids. Re-inserting
// an id already present moves it to the back ("newest") instead of adding a
// second copy, which is what lets a repeatedly useful starter survive
// eviction indefinitely.
type FifoSet struct {
	capacity int
	queue    []candidates.NodeId
}

// NewFifoSet returns an empty set bounded to capacity entries. Capacity must
// be at least 1.
func NewFifoSet(capacity int) *FifoSet {
	if capacity < 1 {
		panic(fmt.Sprintf("catapults: capacity must be >= 1, got %d", capacity))
	}
	return &FifoSet{capacity: capacity}
}

// Insert adds id, refreshing its position to newest if already present and
// evicting the oldest entry if the set is at capacity for a genuinely new id.
func (f *FifoSet) Insert(id candidates.NodeId) {
	for i, existing := range f.queue {
		if existing == id {
			f.queue = append(f.queue[:i], f.queue[i+1:]...)
			f.queue = append(f.queue, id)
			return
		}
	}
	if len(f.queue) >= f.capacity {
		f.queue = f.queue[1:]
	}
	f.queue = append(f.queue, id)
}

// Snapshot returns the current contents, oldest-first. The caller must not
// mutate the returned slice.
func (f *FifoSet) Snapshot() []candidates.NodeId {
	return f.queue
}

// Clear empties the set.
func (f *FifoSet) Clear() {
	f.queue = nil
}

// Len returns the current size.
func (f *FifoSet) Len() int {
	return len(f.queue)
}
