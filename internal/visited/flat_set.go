package visited

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/diffsec/catapult/internal/candidates"
)

// FlatSet is a whole-graph visited bitmap backed by a Roaring bitmap. It
// suits graphs small enough (or dense-enough visits) that the upfront cost
// of addressing the full id space is negligible, trading the page-sparse
// set's lazy allocation for roaring's compact run encoding.
type FlatSet struct {
	bits *roaring.Bitmap
}

// NewFlatSet returns an empty flat visited set.
func NewFlatSet() *FlatSet {
	return &FlatSet{bits: roaring.New()}
}

// Set marks id as visited. Idempotent.
func (f *FlatSet) Set(id candidates.NodeId) {
	f.bits.Add(uint32(id))
}

// Get reports whether Set(id) has previously been called.
func (f *FlatSet) Get(id candidates.NodeId) bool {
	return f.bits.Contains(uint32(id))
}
