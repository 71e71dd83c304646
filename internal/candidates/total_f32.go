// Package candidates implements the total-ordered distance wrapper, the
// candidate record the beam search threads through the graph, and the
// bounded top-K set that keeps the beam's best-so-far entries.
package candidates

import "math"

// TotalF32 wraps a float32 so that it sorts by the IEEE 754 totalOrder
// predicate: negatives < −0 < +0 < positives < +∞ < NaN. Equality is by bit
// pattern, so both NaNs equal themselves and only themselves, and +0 != −0.
type TotalF32 struct {
	value float32
}

// NewTotalF32 wraps a float32 value.
func NewTotalF32(v float32) TotalF32 {
	return TotalF32{value: v}
}

// Float32 returns the wrapped value.
func (t TotalF32) Float32() float32 {
	return t.value
}

// orderKey maps the bit pattern onto a uint32 whose natural ordering matches
// IEEE 754 totalOrder: for non-negative values, set the sign bit so they sort
// above every negative value; for negative values, invert all bits so larger
// magnitudes (more negative) sort first.
func (t TotalF32) orderKey() uint32 {
	bits := math.Float32bits(t.value)
	if bits&0x8000_0000 != 0 {
		return ^bits
	}
	return bits | 0x8000_0000
}

// Less reports whether t sorts strictly before other under totalOrder.
func (t TotalF32) Less(other TotalF32) bool {
	return t.orderKey() < other.orderKey()
}

// Compare returns -1, 0, or 1 as t is less than, equal to (by order key), or
// greater than other.
func (t TotalF32) Compare(other TotalF32) int {
	a, b := t.orderKey(), other.orderKey()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// BitsEqual reports bit-pattern equality, the equality relation specified for
// TotalF32. It distinguishes -0 from +0; Compare == 0 agrees with it, since
// the order key is a one-to-one mapping of the bit pattern.
func (t TotalF32) BitsEqual(other TotalF32) bool {
	return math.Float32bits(t.value) == math.Float32bits(other.value)
}

// Bits returns the raw bit pattern, usable as a hash key.
func (t TotalF32) Bits() uint32 {
	return math.Float32bits(t.value)
}
