// Package numerics holds the fixed-lane aligned block type and the SIMD-backed
// kernels (dot, l2, l2 squared) that every distance computation in the search
// path ultimately calls.
package numerics

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/viterin/vek/vek32"
)

// Lanes is the compile-time SIMD lane count. Every AlignedBlock holds exactly
// this many float32s, and every payload's length in blocks must agree across
// the whole graph and every query.
const Lanes = 8

// AlignedBlock is one lane-wide chunk of a payload. It is produced once by a
// loader and never mutated afterward.
type AlignedBlock [Lanes]float32

// NewAlignedBlocks splits a flat float32 slice into blocks of Lanes elements.
// len(values) must be a multiple of Lanes.
func NewAlignedBlocks(values []float32) ([]AlignedBlock, error) {
	if len(values)%Lanes != 0 {
		return nil, fmt.Errorf("numerics: vector length %d is not a multiple of lane count %d", len(values), Lanes)
	}
	blocks := make([]AlignedBlock, len(values)/Lanes)
	for i := range blocks {
		copy(blocks[i][:], values[i*Lanes:(i+1)*Lanes])
	}
	return blocks, nil
}

// Flatten reassembles a block sequence into one contiguous float32 slice.
func Flatten(blocks []AlignedBlock) []float32 {
	out := make([]float32, 0, len(blocks)*Lanes)
	for _, b := range blocks {
		out = append(out, b[:]...)
	}
	return out
}

func requireEqualLen(x, y []AlignedBlock) {
	if len(x) != len(y) {
		panic(fmt.Sprintf("numerics: mismatched block counts %d != %d", len(x), len(y)))
	}
}

// L2Squared returns the squared Euclidean distance between two equal-length
// block sequences, accumulated lane-parallel then horizontally reduced via
// vek32 so the summation order (and therefore the bit pattern of the result)
// is stable across runs on the same hardware. Panics on length mismatch.
func L2Squared(x, y []AlignedBlock) float32 {
	requireEqualLen(x, y)
	var total float32
	for i := range x {
		diff := vek32.Sub(x[i][:], y[i][:])
		total += vek32.Dot(diff, diff)
	}
	return total
}

// L2 returns the Euclidean distance between two equal-length block sequences.
func L2(x, y []AlignedBlock) float32 {
	return math32.Sqrt(L2Squared(x, y))
}

// Dot returns the dot product of two equal-length block sequences, accumulated
// block-by-block in the same lane-parallel order as L2Squared.
func Dot(x, y []AlignedBlock) float32 {
	requireEqualLen(x, y)
	var total float32
	for i := range x {
		total += vek32.Dot(x[i][:], y[i][:])
	}
	return total
}
