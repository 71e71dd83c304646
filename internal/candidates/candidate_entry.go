package candidates

// NodeId is a transparent index into the graph's node array. It is the only
// identity used for de-duplication and visited-tracking.
type NodeId uint32

// CandidateEntry is a single scored point produced during a search: a
// distance, the node it refers to, and whether some ancestor on the
// expansion path that reached it was a catapult start. Ordering is by
// distance only; equality and hashing are on Node only, so the top-K set
// collapses multiple paths to the same node regardless of the other fields.
type CandidateEntry struct {
	Distance            TotalF32
	Node                NodeId
	HasCatapultAncestor bool
}

// Less orders two entries by distance alone.
func (c CandidateEntry) Less(other CandidateEntry) bool {
	return c.Distance.Less(other.Distance)
}
