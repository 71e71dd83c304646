package search

import (
	"fmt"
	"sort"

	"github.com/diffsec/catapult/internal/candidates"
	"github.com/diffsec/catapult/internal/numerics"
	"github.com/diffsec/catapult/internal/statistics"
	"github.com/diffsec/catapult/internal/visited"
)

// Node is one vertex of the adjacency graph: its payload and its immutable
// out-edge list. Built once at load time, never mutated during search.
type Node struct {
	Payload   []numerics.AlignedBlock
	Neighbors []candidates.NodeId
}

// Graph is the flat, single-layer proximity graph the beam search runs
// over. It is immutable after construction except for the starter engine's
// per-bucket catapult caches.
type Graph struct {
	nodes            []Node
	starter          *StarterEngine
	catapultsEnabled bool
}

// NewGraph validates and assembles a Graph from a completed node array.
// Panics if any neighbor index is out of range, since that can only be
// caused by a corrupted loader or input, not by a caller's query.
func NewGraph(nodes []Node, starter *StarterEngine, catapultsEnabled bool) *Graph {
	for i, n := range nodes {
		for _, m := range n.Neighbors {
			if int(m) >= len(nodes) {
				panic(fmt.Sprintf("search: node %d has out-of-range neighbor %d (graph has %d nodes)", i, m, len(nodes)))
			}
		}
	}
	return &Graph{nodes: nodes, starter: starter, catapultsEnabled: catapultsEnabled}
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// ClearAllCatapults empties every eviction bucket.
func (g *Graph) ClearAllCatapults() {
	g.starter.ClearAll()
}

// CatapultBuckets returns a snapshot of every non-empty catapult bucket,
// keyed by LSH signature.
func (g *Graph) CatapultBuckets() map[uint64][]candidates.NodeId {
	out := make(map[uint64][]candidates.NodeId)
	for _, sig := range g.starter.NonEmptyBucketSignatures() {
		out[sig] = g.starter.BucketSnapshot(sig)
	}
	return out
}

func (g *Graph) distancesFromIndices(indices []candidates.NodeId, query []numerics.AlignedBlock, catapultMarker bool, stats *statistics.Stats) []candidates.CandidateEntry {
	stats.BumpComputedDists(len(indices))
	out := make([]candidates.CandidateEntry, len(indices))
	for i, idx := range indices {
		d := numerics.L2Squared(g.nodes[idx].Payload, query)
		out[i] = candidates.CandidateEntry{
			Distance:            candidates.NewTotalF32(d),
			Node:                idx,
			HasCatapultAncestor: catapultMarker,
		}
	}
	return out
}

// beamSearchRaw drives the best-first expansion loop once the starting
// candidates are already scored and seeded into the beam.
func (g *Graph) beamSearchRaw(query []numerics.AlignedBlock, startingCandidates []candidates.CandidateEntry, k, beamWidth int, stats *statistics.Stats) []candidates.CandidateEntry {
	if beamWidth < k {
		panic(fmt.Sprintf("search: beam width %d must be >= k %d", beamWidth, k))
	}
	stats.BumpBeamCalls()

	beam := candidates.NewSmallestK(beamWidth)
	visitedSet := visited.NewPageSet()

	beam.InsertBatch(startingCandidates)

	current, ok := beam.Min()
	if !ok {
		panic("search: beam search started with no candidates")
	}

	for {
		visitedSet.Set(current.Node)
		stats.BumpNodesVisited()

		neighbors := g.nodes[current.Node].Neighbors
		neighborEntries := g.distancesFromIndices(neighbors, query, current.HasCatapultAncestor, stats)
		beam.InsertBatch(neighborEntries)

		next, found := firstUnvisited(beam.Iter(), visitedSet)
		if !found {
			break
		}
		current = next
	}

	result := beam.IntoSortedVec()
	sort.SliceStable(result, func(i, j int) bool { return result[i].Less(result[j]) })
	if len(result) > k {
		result = result[:k]
	}
	return result
}

func firstUnvisited(entries []candidates.CandidateEntry, v *visited.PageSet) (candidates.CandidateEntry, bool) {
	for _, e := range entries {
		if !v.Get(e.Node) {
			return e, true
		}
	}
	return candidates.CandidateEntry{}, false
}

// BeamSearch answers one query: it seeds the beam from the LSH-selected
// starting points (catapults plus the fallback), expands best-unvisited
// first, and — if catapults are enabled — records the winning node back into
// the query's bucket before returning the top k results.
func (g *Graph) BeamSearch(query []numerics.AlignedBlock, k, beamWidth int, stats *statistics.Stats) []candidates.CandidateEntry {
	hashSearch := g.starter.SelectStartPoints(query)
	signature := hashSearch.Signature
	entryPoints := hashSearch.Starts

	distances := g.distancesFromIndices(entryPoints, query, true, stats)
	distances[len(distances)-1].HasCatapultAncestor = false // fallback is last, not a catapult

	results := g.beamSearchRaw(query, distances, k, beamWidth, stats)

	if g.catapultsEnabled {
		best := results[0].Node
		g.starter.Record(signature, best)
		for _, e := range results {
			if e.HasCatapultAncestor {
				stats.BumpSearchesWithCatapults()
				break
			}
		}
	}

	return results
}
