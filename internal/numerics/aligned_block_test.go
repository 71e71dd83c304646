package numerics

import (
	"math"
	"testing"
)

func scalarL2Sq(x, y []AlignedBlock) float32 {
	var sum float32
	for i := range x {
		for l := 0; l < Lanes; l++ {
			d := x[i][l] - y[i][l]
			sum += d * d
		}
	}
	return sum
}

func repeat(v float32) AlignedBlock {
	var b AlignedBlock
	for i := range b {
		b[i] = v
	}
	return b
}

func TestL2SquaredMatchesScalarMultipleOfLanes(t *testing.T) {
	x := []AlignedBlock{repeat(1), repeat(2), repeat(3)}
	y := []AlignedBlock{repeat(4), repeat(0), repeat(3)}

	got := L2Squared(x, y)
	want := scalarL2Sq(x, y)

	if got != want {
		t.Fatalf("L2Squared = %v, want %v", got, want)
	}
}

func TestL2IsSqrtOfL2Squared(t *testing.T) {
	x := []AlignedBlock{repeat(1), repeat(5)}
	y := []AlignedBlock{repeat(4), repeat(1)}

	sq := L2Squared(x, y)
	got := L2(x, y)
	want := float32(math.Sqrt(float64(sq)))

	if got != want {
		t.Fatalf("L2 = %v, want %v", got, want)
	}
}

func TestIdenticalVectorsHaveZeroDistance(t *testing.T) {
	x := []AlignedBlock{repeat(7), repeat(-3)}
	if d := L2Squared(x, x); d != 0 {
		t.Fatalf("L2Squared(x, x) = %v, want 0", d)
	}
	if d := L2(x, x); d != 0 {
		t.Fatalf("L2(x, x) = %v, want 0", d)
	}
}

func TestDotMatchesScalar(t *testing.T) {
	x := []AlignedBlock{repeat(2), repeat(3)}
	y := []AlignedBlock{repeat(5), repeat(7)}

	got := Dot(x, y)
	var want float32
	for i := range x {
		for l := 0; l < Lanes; l++ {
			want += x[i][l] * y[i][l]
		}
	}
	if got != want {
		t.Fatalf("Dot = %v, want %v", got, want)
	}
}

func TestL2SquaredPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on mismatched lengths")
		}
	}()
	L2Squared([]AlignedBlock{repeat(1)}, []AlignedBlock{repeat(1), repeat(1)})
}

func TestNewAlignedBlocksRejectsNonMultipleLength(t *testing.T) {
	_, err := NewAlignedBlocks(make([]float32, Lanes+1))
	if err == nil {
		t.Fatal("expected error for non-multiple-of-lanes length")
	}
}

func TestNewAlignedBlocksRoundTrip(t *testing.T) {
	values := make([]float32, Lanes*3)
	for i := range values {
		values[i] = float32(i)
	}
	blocks, err := NewAlignedBlocks(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := Flatten(blocks)
	if len(got) != len(values) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(values))
	}
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], values[i])
		}
	}
}
