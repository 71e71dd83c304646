// Package visited provides two behaviorally-equivalent sparse-bitmap
// implementations used to suppress re-expansion of nodes during a beam
// search: a page-sparse set for large graphs where a search only touches a
// tiny fraction of nodes, and a flat set backed by a single whole-graph
// Roaring bitmap for graphs small enough that per-page maps are not worth it.
package visited

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/diffsec/catapult/internal/candidates"
)

// pageBits is the size of one lazily-allocated page.
const pageBits = 4096

// Set is satisfied by both PageSet and FlatSet.
type Set interface {
	Set(id candidates.NodeId)
	Get(id candidates.NodeId) bool
}

// PageSet is a page-sparse bitmap keyed by page index (id >> 12). Pages are
// allocated on first write, so a search that only ever touches a handful of
// nodes in a graph of millions allocates only a handful of 4096-bit pages.
type PageSet struct {
	pages map[uint64]*bitset.BitSet
}

// NewPageSet returns an empty page-sparse visited set.
func NewPageSet() *PageSet {
	return &PageSet{pages: make(map[uint64]*bitset.BitSet)}
}

func pageIndex(id candidates.NodeId) (page uint64, offset uint) {
	page = uint64(id) >> 12
	offset = uint(uint64(id) & (pageBits - 1))
	return
}

// Set marks id as visited. Idempotent.
func (p *PageSet) Set(id candidates.NodeId) {
	page, offset := pageIndex(id)
	b, ok := p.pages[page]
	if !ok {
		b = bitset.New(pageBits)
		p.pages[page] = b
	}
	b.Set(offset)
}

// Get reports whether Set(id) has previously been called.
func (p *PageSet) Get(id candidates.NodeId) bool {
	page, offset := pageIndex(id)
	b, ok := p.pages[page]
	if !ok {
		return false
	}
	return b.Test(offset)
}
