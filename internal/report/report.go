// Package report renders sweep results as text, CSV, or HTML.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/diffsec/catapult/internal/snapshot"
)

// Text renders sweep results as a human-readable, one-block-per-run summary.
func Text(runs []snapshot.RunRecord) string {
	var b strings.Builder
	for _, r := range runs {
		fmt.Fprintf(&b, "threads=%d beam_width=%d\n", r.Threads, r.BeamWidth)
		fmt.Fprintf(&b, "  queries: %s   checksum: %d\n", humanize.Comma(int64(r.NumQueries)), r.Checksum)
		fmt.Fprintf(&b, "  QPS: %s\n", humanize.FormatFloat("#,###.##", r.QPS))
		fmt.Fprintf(&b, "  avg dists computed: %.2f   avg nodes visited: %.2f\n", r.AvgDistsComputed, r.AvgNodesVisited)
		if r.CatapultUsagePct > 0 {
			fmt.Fprintf(&b, "  catapult usage: %.2f%%\n", r.CatapultUsagePct)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// CSV renders sweep results as a header row followed by one row per run.
func CSV(runs []snapshot.RunRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{
		"Run ID", "Threads", "Beam Width", "Num Neighbors", "Num Queries",
		"Checksum", "QPS", "Avg Dists Computed", "Avg Nodes Visited",
		"Catapult Usage %", "Created At",
	}
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("report: writing csv header: %w", err)
	}

	for _, r := range runs {
		row := []string{
			r.RunID,
			fmt.Sprintf("%d", r.Threads),
			fmt.Sprintf("%d", r.BeamWidth),
			fmt.Sprintf("%d", r.NumNeighbors),
			fmt.Sprintf("%d", r.NumQueries),
			fmt.Sprintf("%d", r.Checksum),
			fmt.Sprintf("%.4f", r.QPS),
			fmt.Sprintf("%.4f", r.AvgDistsComputed),
			fmt.Sprintf("%.4f", r.AvgNodesVisited),
			fmt.Sprintf("%.2f", r.CatapultUsagePct),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("report: writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("report: csv write error: %w", err)
	}
	return buf.Bytes(), nil
}

// HTML renders sweep results as a standalone HTML report with a summary
// stat card and a per-run table.
func HTML(runs []snapshot.RunRecord) []byte {
	var b strings.Builder

	titleCaser := cases.Title(language.English)

	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Sweep Report</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 2rem; color: #1e293b; }
        table { border-collapse: collapse; width: 100%; }
        th, td { border: 1px solid #e2e8f0; padding: 0.5rem 0.75rem; text-align: right; }
        th { background: #f8fafc; text-align: left; }
        td:first-child, th:first-child { text-align: left; }
        .summary { display: flex; gap: 1rem; margin-bottom: 1.5rem; }
        .stat-card { border: 1px solid #e2e8f0; border-radius: 0.5rem; padding: 1rem; }
        .stat-value { font-size: 1.5rem; font-weight: bold; }
        .stat-label { color: #64748b; font-size: 0.875rem; }
    </style>
</head>
<body>
    <h1>Sweep Report</h1>
`)

	fmt.Fprintf(&b, `    <div class="summary">
        <div class="stat-card"><div class="stat-value">%d</div><div class="stat-label">%s</div></div>
    </div>
`, len(runs), titleCaser.String("configurations"))

	b.WriteString(`    <table>
        <tr><th>Threads</th><th>Beam Width</th><th>Queries</th><th>Checksum</th><th>QPS</th><th>Avg Dists</th><th>Avg Visited</th><th>Catapult %</th></tr>
`)
	for _, r := range runs {
		fmt.Fprintf(&b, "        <tr><td>%d</td><td>%d</td><td>%s</td><td>%d</td><td>%s</td><td>%.2f</td><td>%.2f</td><td>%.2f</td></tr>\n",
			r.Threads, r.BeamWidth, humanize.Comma(int64(r.NumQueries)), r.Checksum,
			humanize.FormatFloat("#,###.##", r.QPS), r.AvgDistsComputed, r.AvgNodesVisited, r.CatapultUsagePct)
	}
	b.WriteString(`    </table>
</body>
</html>`)

	return []byte(b.String())
}
