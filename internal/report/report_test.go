package report

import (
	"strings"
	"testing"
	"time"

	"github.com/diffsec/catapult/internal/snapshot"
)

func sampleRuns() []snapshot.RunRecord {
	return []snapshot.RunRecord{
		{
			RunID:            "run-1",
			Threads:          4,
			BeamWidth:        20,
			NumNeighbors:     10,
			NumQueries:       5000,
			Checksum:         99,
			QPS:              1234.5,
			AvgDistsComputed: 12.3,
			AvgNodesVisited:  7.1,
			CatapultUsagePct: 33.3,
			CreatedAt:        time.Unix(0, 0).UTC(),
		},
	}
}

func TestTextIncludesKeyFields(t *testing.T) {
	out := Text(sampleRuns())
	for _, want := range []string{"threads=4", "beam_width=20", "checksum: 99"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Text() missing %q in:\n%s", want, out)
		}
	}
}

func TestCSVHasHeaderAndRow(t *testing.T) {
	data, err := CSV(sampleRuns())
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "Run ID,") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "run-1") {
		t.Fatalf("row missing run id: %s", lines[1])
	}
}

func TestHTMLIsWellFormedDocument(t *testing.T) {
	out := string(HTML(sampleRuns()))
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Fatal("expected HTML document to start with doctype")
	}
	if !strings.Contains(out, "<table>") || !strings.Contains(out, "</table>") {
		t.Fatal("expected a table in the HTML report")
	}
}

func TestHTMLHandlesEmptyRuns(t *testing.T) {
	out := string(HTML(nil))
	if !strings.Contains(out, "<table>") {
		t.Fatal("expected table markup even with no runs")
	}
}
