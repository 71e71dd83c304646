package hash

import (
	"testing"

	"github.com/diffsec/catapult/internal/numerics"
)

func block(v float32) numerics.AlignedBlock {
	var b numerics.AlignedBlock
	for i := range b {
		b[i] = v
	}
	return b
}

func TestHashIntDeterministicAndBounded(t *testing.T) {
	h := NewSeededHyperplaneHasher(4, 1, 42)
	q := []numerics.AlignedBlock{block(1)}

	sig1 := h.HashInt(q)
	sig2 := h.HashInt(q)
	if sig1 != sig2 {
		t.Fatalf("HashInt not deterministic: %d != %d", sig1, sig2)
	}
	if sig1 >= 1<<4 {
		t.Fatalf("signature %d exceeds 2^H bound", sig1)
	}
}

func TestHashIntDifferentSeedsDiffer(t *testing.T) {
	q := []numerics.AlignedBlock{block(1)}
	a := NewSeededHyperplaneHasher(8, 1, 1).HashInt(q)
	b := NewSeededHyperplaneHasher(8, 1, 2).HashInt(q)
	// Not a hard guarantee in general, but with 8 planes and distinct seeds
	// a collision across every single bit is exceedingly unlikely and would
	// indicate the seed isn't actually perturbing the projections.
	if a == b {
		t.Skip("seeds produced identical signature; extremely unlikely but not impossible")
	}
}

func TestHashIntPanicsOnDimensionMismatch(t *testing.T) {
	h := NewSeededHyperplaneHasher(2, 2, 42)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on dimension mismatch")
		}
	}()
	h.HashInt([]numerics.AlignedBlock{block(1)})
}

// TestHashDotSignBehavior manually installs two known projection planes (an
// "x-axis" plane and a "y-axis" plane, laid across two lanes of a single
// block) and checks the sign-accumulation order against a hand-computed
// expectation.
func TestHashDotSignBehavior(t *testing.T) {
	h := &HyperplaneHasher{numHashes: 2, dimBlocks: 1}
	xAxis := numerics.AlignedBlock{}
	xAxis[0] = 1
	yAxis := numerics.AlignedBlock{}
	yAxis[1] = 1
	h.planes = [][]numerics.AlignedBlock{{xAxis}, {yAxis}}

	query := numerics.AlignedBlock{}
	query[0] = 1
	query[1] = -1

	// plane0 . query = 1 (>=0 -> bit 1), plane1 . query = -1 (<0 -> bit 0)
	// MSB-first: sig = (1 << 1) | 0 = 2
	got := h.HashInt([]numerics.AlignedBlock{query})
	if got != 2 {
		t.Fatalf("HashInt = %d, want 2", got)
	}
}
