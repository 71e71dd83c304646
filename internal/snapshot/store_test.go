package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/diffsec/catapult/internal/candidates"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestRunRecordRoundTrip checks that a RunRecord written and re-read by
// RunID reproduces every field.
func TestRunRecordRoundTrip(t *testing.T) {
	s := openTestStore(t)

	want := RunRecord{
		Threads:          4,
		BeamWidth:        20,
		NumNeighbors:     10,
		NumQueries:       1000,
		Checksum:         123456,
		QPS:              987.5,
		AvgDistsComputed: 42.1,
		AvgNodesVisited:  17.3,
		CatapultUsagePct: 55.0,
	}

	runID, err := s.RecordRun(want)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if runID == "" {
		t.Fatal("expected a generated run id")
	}

	got, err := s.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}

	if got.Threads != want.Threads || got.BeamWidth != want.BeamWidth ||
		got.NumNeighbors != want.NumNeighbors || got.NumQueries != want.NumQueries ||
		got.Checksum != want.Checksum || got.QPS != want.QPS ||
		got.AvgDistsComputed != want.AvgDistsComputed || got.AvgNodesVisited != want.AvgNodesVisited ||
		got.CatapultUsagePct != want.CatapultUsagePct {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be populated")
	}
}

func TestListRunsOrdersMostRecentFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 500_000_000, time.UTC)
	id1, err := s.RecordRun(RunRecord{Threads: 1, BeamWidth: 10, CreatedAt: base})
	if err != nil {
		t.Fatal(err)
	}
	id2, err := s.RecordRun(RunRecord{Threads: 2, BeamWidth: 20, CreatedAt: base.Add(10 * time.Millisecond)})
	if err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	seen := map[string]bool{}
	for _, r := range runs {
		seen[r.RunID] = true
	}
	if !seen[id1] || !seen[id2] {
		t.Fatalf("missing expected run ids in %v", runs)
	}
	if runs[0].RunID != id2 || runs[1].RunID != id1 {
		t.Fatalf("order = [%s %s], want [%s %s]", runs[0].RunID, runs[1].RunID, id2, id1)
	}
}

func TestCatapultSnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)

	runID, err := s.RecordRun(RunRecord{Threads: 1, BeamWidth: 5})
	if err != nil {
		t.Fatal(err)
	}

	want := CatapultSnapshot{
		RunID:     runID,
		Signature: 42,
		Nodes:     []candidates.NodeId{4, 2, 3, 5},
	}
	if err := s.RecordCatapultSnapshot(want); err != nil {
		t.Fatalf("RecordCatapultSnapshot: %v", err)
	}

	got, err := s.GetCatapultSnapshot(runID, 42)
	if err != nil {
		t.Fatalf("GetCatapultSnapshot: %v", err)
	}
	if got.Signature != want.Signature || len(got.Nodes) != len(want.Nodes) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i, n := range want.Nodes {
		if got.Nodes[i] != n {
			t.Fatalf("node[%d] = %d, want %d", i, got.Nodes[i], n)
		}
	}
}

func TestClearCatapultSnapshotsRemovesAllRows(t *testing.T) {
	s := openTestStore(t)

	runID, err := s.RecordRun(RunRecord{Threads: 1, BeamWidth: 5})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordCatapultSnapshot(CatapultSnapshot{RunID: runID, Signature: 1, Nodes: []candidates.NodeId{1}}); err != nil {
		t.Fatal(err)
	}

	if err := s.ClearCatapultSnapshots(); err != nil {
		t.Fatalf("ClearCatapultSnapshots: %v", err)
	}

	if _, err := s.GetCatapultSnapshot(runID, 1); err == nil {
		t.Fatal("expected error after clearing snapshots")
	}
}

func TestGetRunMissingReturnsError(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetRun("does-not-exist"); err == nil {
		t.Fatal("expected error for missing run id")
	}
}
