package statistics

import "testing"

func TestStatsBumpAndGet(t *testing.T) {
	var s Stats
	s.BumpBeamCalls()
	s.BumpNodesVisited()
	s.BumpNodesVisited()
	s.BumpComputedDists(5)
	s.BumpSearchesWithCatapults()

	if s.GetBeamCalls() != 1 {
		t.Errorf("GetBeamCalls = %d, want 1", s.GetBeamCalls())
	}
	if s.GetNodesVisited() != 2 {
		t.Errorf("GetNodesVisited = %d, want 2", s.GetNodesVisited())
	}
	if s.GetComputedDists() != 5 {
		t.Errorf("GetComputedDists = %d, want 5", s.GetComputedDists())
	}
	if s.GetSearchesWithCatapults() != 1 {
		t.Errorf("GetSearchesWithCatapults = %d, want 1", s.GetSearchesWithCatapults())
	}
}

func TestStatsMerge(t *testing.T) {
	a := &Stats{}
	a.BumpBeamCalls()
	a.BumpComputedDists(3)

	b := &Stats{}
	b.BumpBeamCalls()
	b.BumpNodesVisited()
	b.BumpComputedDists(4)

	merged := a.Merge(b)
	if merged.GetBeamCalls() != 2 {
		t.Errorf("merged beam calls = %d, want 2", merged.GetBeamCalls())
	}
	if merged.GetNodesVisited() != 1 {
		t.Errorf("merged nodes visited = %d, want 1", merged.GetNodesVisited())
	}
	if merged.GetComputedDists() != 7 {
		t.Errorf("merged computed dists = %d, want 7", merged.GetComputedDists())
	}

	// originals untouched
	if a.GetBeamCalls() != 1 || b.GetBeamCalls() != 1 {
		t.Error("Merge must not mutate its operands")
	}
}
