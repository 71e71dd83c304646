// Package statistics holds the explicit, pass-by-reference counters threaded
// through a search and merged across worker goroutines at the end of a
// sweep, rather than process-wide atomics.
package statistics

// Stats accumulates counters for one worker's share of a run. The zero value
// is ready to use.
type Stats struct {
	beamCalls            uint64
	nodesVisited         uint64
	distsComputed        uint64
	searchesWithCatapult uint64
}

// BumpBeamCalls increments the beam-search invocation counter by one.
func (s *Stats) BumpBeamCalls() {
	s.beamCalls++
}

// BumpNodesVisited increments the nodes-visited counter by one.
func (s *Stats) BumpNodesVisited() {
	s.nodesVisited++
}

// BumpComputedDists increments the distances-computed counter by n.
func (s *Stats) BumpComputedDists(n int) {
	s.distsComputed += uint64(n)
}

// BumpSearchesWithCatapults increments the catapult-hit counter by one.
func (s *Stats) BumpSearchesWithCatapults() {
	s.searchesWithCatapult++
}

// GetBeamCalls returns the beam-search invocation count.
func (s *Stats) GetBeamCalls() uint64 { return s.beamCalls }

// GetNodesVisited returns the nodes-visited count.
func (s *Stats) GetNodesVisited() uint64 { return s.nodesVisited }

// GetComputedDists returns the distances-computed count.
func (s *Stats) GetComputedDists() uint64 { return s.distsComputed }

// GetSearchesWithCatapults returns the catapult-hit count.
func (s *Stats) GetSearchesWithCatapults() uint64 { return s.searchesWithCatapult }

// Merge returns a new Stats whose counters are the field-wise sum of s and
// other, for combining per-worker records after a sweep.
func (s *Stats) Merge(other *Stats) *Stats {
	return &Stats{
		beamCalls:            s.beamCalls + other.beamCalls,
		nodesVisited:         s.nodesVisited + other.nodesVisited,
		distsComputed:        s.distsComputed + other.distsComputed,
		searchesWithCatapult: s.searchesWithCatapult + other.searchesWithCatapult,
	}
}
