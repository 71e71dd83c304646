// Package hash implements the deterministic hyperplane LSH used to map a
// query to one of 2^H eviction buckets.
package hash

import (
	"fmt"
	"math/rand"

	"github.com/diffsec/catapult/internal/numerics"
)

// HyperplaneHasher holds H random hyperplanes, each a payload-dimensioned
// sequence of aligned blocks sampled from a standard normal distribution at
// construction. It is immutable after NewSeededHyperplaneHasher returns.
type HyperplaneHasher struct {
	numHashes int
	dimBlocks int
	planes    [][]numerics.AlignedBlock
}

// NewSeededHyperplaneHasher builds a deterministic hasher for numHashes
// planes over vectors of dimBlocks aligned blocks, sampling Gaussian
// projection components from a PRNG seeded with seed. dimBlocks must be >= 1.
func NewSeededHyperplaneHasher(numHashes, dimBlocks int, seed uint64) *HyperplaneHasher {
	if numHashes < 1 {
		panic(fmt.Sprintf("hash: numHashes must be >= 1, got %d", numHashes))
	}
	if dimBlocks < 1 {
		panic(fmt.Sprintf("hash: dimBlocks must be >= 1, got %d", dimBlocks))
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	planes := make([][]numerics.AlignedBlock, numHashes)
	for p := 0; p < numHashes; p++ {
		blocks := make([]numerics.AlignedBlock, dimBlocks)
		for b := 0; b < dimBlocks; b++ {
			for l := 0; l < numerics.Lanes; l++ {
				blocks[b][l] = float32(rng.NormFloat64())
			}
		}
		planes[p] = blocks
	}

	return &HyperplaneHasher{numHashes: numHashes, dimBlocks: dimBlocks, planes: planes}
}

// NumHashes returns H.
func (h *HyperplaneHasher) NumHashes() int {
	return h.numHashes
}

// HashInt computes the query's signature: planes are accumulated MSB-first,
// so the first plane's sign bit lands at position H-1. Panics if q's block
// count doesn't match the hasher's configured dimension.
func (h *HyperplaneHasher) HashInt(q []numerics.AlignedBlock) uint64 {
	if len(q) != h.dimBlocks {
		panic(fmt.Sprintf("hash: query has %d blocks, hasher expects %d", len(q), h.dimBlocks))
	}

	var sig uint64
	for _, plane := range h.planes {
		bit := uint64(0)
		if numerics.Dot(plane, q) >= 0 {
			bit = 1
		}
		sig = (sig << 1) | bit
	}
	return sig
}
