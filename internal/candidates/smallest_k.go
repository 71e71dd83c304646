package candidates

import (
	"fmt"
	"sort"

	"golang.org/x/exp/slices"
)

// SmallestK keeps at most K candidate entries, sorted ascending by distance,
// de-duplicated by node identity at the entry's distance. Insertion order
// among equal-distance entries is preserved (first-seen wins a tie), because
// a new entry is placed after every held entry of equal distance and so can
// never displace one without having a strictly smaller distance.
type SmallestK struct {
	capacity int
	members  []CandidateEntry
}

// NewSmallestK constructs an empty set bounded to capacity entries. Panics if
// capacity < 1.
func NewSmallestK(capacity int) *SmallestK {
	if capacity < 1 {
		panic(fmt.Sprintf("candidates: capacity must be >= 1, got %d", capacity))
	}
	return &SmallestK{capacity: capacity}
}

// Len returns the current number of held entries.
func (s *SmallestK) Len() int {
	return len(s.members)
}

// Cap returns K.
func (s *SmallestK) Cap() int {
	return s.capacity
}

// position finds the first index p such that s.members[p] is not less than
// item, i.e. the start of the run of held entries whose distance equals
// item's.
func (s *SmallestK) position(item CandidateEntry) int {
	return sort.Search(len(s.members), func(i int) bool {
		return !s.members[i].Less(item)
	})
}

// hasNodeAt reports whether the member at index p (if any) shares item's node.
func (s *SmallestK) hasNodeAt(p int, item CandidateEntry) bool {
	return p < len(s.members) && s.members[p].Node == item.Node
}

// InsertBatch inserts each entry, in order, following the bounded top-K
// algorithm: locate the sorted position just past any held entries of equal
// distance, skip if an entry for the same node is among those equal entries
// or at that position, otherwise insert if there's room, otherwise evict the
// current last entry if this one still ranks inside the K window, otherwise
// drop it. Returns the number actually added.
func (s *SmallestK) InsertBatch(entries []CandidateEntry) int {
	added := 0
	for _, item := range entries {
		p := s.position(item)
		dup := s.hasNodeAt(p, item)
		for !dup && p < len(s.members) && !item.Less(s.members[p]) {
			p++
			dup = s.hasNodeAt(p, item)
		}
		if dup {
			continue
		}
		switch {
		case len(s.members) < s.capacity:
			s.members = slices.Insert(s.members, p, item)
			added++
		case p < s.capacity:
			s.members = slices.Delete(s.members, len(s.members)-1, len(s.members))
			s.members = slices.Insert(s.members, p, item)
			added++
		}
	}
	return added
}

// Iter returns the held entries in ascending order. The caller must not
// mutate the returned slice.
func (s *SmallestK) Iter() []CandidateEntry {
	return s.members
}

// IntoSortedVec returns a copy of the held entries in ascending order.
func (s *SmallestK) IntoSortedVec() []CandidateEntry {
	out := make([]CandidateEntry, len(s.members))
	copy(out, s.members)
	return out
}

// Min returns the smallest held entry and true, or the zero value and false
// if the set is empty.
func (s *SmallestK) Min() (CandidateEntry, bool) {
	if len(s.members) == 0 {
		return CandidateEntry{}, false
	}
	return s.members[0], true
}
