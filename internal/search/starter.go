// Package search implements the starter engine (component G) and the
// adjacency graph beam-search driver (component H): the two pieces that tie
// the LSH hasher, the per-bucket eviction sets, and the top-K/visited
// machinery together into one query-answering call.
package search

import (
	"sync"

	"github.com/diffsec/catapult/internal/candidates"
	"github.com/diffsec/catapult/internal/catapults"
	"github.com/diffsec/catapult/internal/hash"
	"github.com/diffsec/catapult/internal/numerics"
)

// StarterParams configures a new StarterEngine.
type StarterParams struct {
	NumHashes     int
	PlaneDimBlocks int
	FallbackStart candidates.NodeId
	Seed          uint64
	EvictCapacity int
}

// bucket pairs a FIFO eviction set with its own reader/writer lock, so
// different buckets never contend with each other.
type bucket struct {
	mu sync.RWMutex
	fs *catapults.FifoSet
}

// StarterEngine owns the hasher, the 2^H independently-guarded eviction
// buckets, and the fixed fallback start node.
type StarterEngine struct {
	hasher        *hash.HyperplaneHasher
	buckets       []*bucket
	fallbackStart candidates.NodeId
	evictCapacity int
}

// NewStarterEngine builds a starter engine with 2^params.NumHashes buckets.
func NewStarterEngine(params StarterParams) *StarterEngine {
	hasher := hash.NewSeededHyperplaneHasher(params.NumHashes, params.PlaneDimBlocks, params.Seed)
	numBuckets := 1 << uint(params.NumHashes)
	buckets := make([]*bucket, numBuckets)
	for i := range buckets {
		buckets[i] = &bucket{fs: catapults.NewFifoSet(params.EvictCapacity)}
	}
	return &StarterEngine{
		hasher:        hasher,
		buckets:       buckets,
		fallbackStart: params.FallbackStart,
		evictCapacity: params.EvictCapacity,
	}
}

// StartingPoints is the result of SelectStartPoints: the query's signature
// and its starter node list, fallback last.
type StartingPoints struct {
	Signature uint64
	Starts    []candidates.NodeId
}

// SelectStartPoints hashes q, takes a read-snapshot of that bucket's FIFO
// contents, and appends the fallback start as the final element.
func (e *StarterEngine) SelectStartPoints(q []numerics.AlignedBlock) StartingPoints {
	sig := e.hasher.HashInt(q)
	b := e.buckets[sig]

	b.mu.RLock()
	snapshot := b.fs.Snapshot()
	starts := make([]candidates.NodeId, len(snapshot), len(snapshot)+1)
	copy(starts, snapshot)
	b.mu.RUnlock()

	starts = append(starts, e.fallbackStart)
	return StartingPoints{Signature: sig, Starts: starts}
}

// Record inserts id into the bucket named by sig under an exclusive lock.
func (e *StarterEngine) Record(sig uint64, id candidates.NodeId) {
	b := e.buckets[sig]
	b.mu.Lock()
	b.fs.Insert(id)
	b.mu.Unlock()
}

// ClearAll empties every bucket.
func (e *StarterEngine) ClearAll() {
	for _, b := range e.buckets {
		b.mu.Lock()
		b.fs.Clear()
		b.mu.Unlock()
	}
}

// NumBuckets returns 2^H.
func (e *StarterEngine) NumBuckets() int {
	return len(e.buckets)
}

// BucketSnapshot returns the current FIFO contents of the bucket named by
// sig, oldest-first.
func (e *StarterEngine) BucketSnapshot(sig uint64) []candidates.NodeId {
	b := e.buckets[sig]
	b.mu.RLock()
	defer b.mu.RUnlock()
	snapshot := b.fs.Snapshot()
	out := make([]candidates.NodeId, len(snapshot))
	copy(out, snapshot)
	return out
}

// NonEmptyBucketSignatures returns the signature of every bucket that
// currently holds at least one cached start point.
func (e *StarterEngine) NonEmptyBucketSignatures() []uint64 {
	var sigs []uint64
	for i, b := range e.buckets {
		b.mu.RLock()
		n := b.fs.Len()
		b.mu.RUnlock()
		if n > 0 {
			sigs = append(sigs, uint64(i))
		}
	}
	return sigs
}
