// Package snapshot persists sweep results and point-in-time catapult bucket
// dumps to SQLite.
package snapshot

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/diffsec/catapult/internal/candidates"
)

// RunRecord is one persisted sweep-configuration result.
type RunRecord struct {
	RunID            string
	Threads          int
	BeamWidth        int
	NumNeighbors     int
	NumQueries       int
	Checksum         uint64
	QPS              float64
	AvgDistsComputed float64
	AvgNodesVisited  float64
	CatapultUsagePct float64
	CreatedAt        time.Time
}

// CatapultSnapshot is a point-in-time dump of one bucket's FIFO contents,
// keyed by the run it was captured during and the bucket's LSH signature.
type CatapultSnapshot struct {
	RunID     string
	Signature uint64
	Nodes     []candidates.NodeId
}

// Store stores run records and catapult snapshots in SQLite.
type Store struct {
	db *sql.DB
}

// Open creates or opens the snapshot database at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("snapshot: creating directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: opening database: %w", err)
	}

	store := &Store{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) init() error {
	schema := `
		CREATE TABLE IF NOT EXISTS run_records (
			run_id TEXT PRIMARY KEY,
			threads INTEGER NOT NULL,
			beam_width INTEGER NOT NULL,
			num_neighbors INTEGER NOT NULL,
			num_queries INTEGER NOT NULL,
			checksum INTEGER NOT NULL,
			qps REAL NOT NULL,
			avg_dists_computed REAL NOT NULL,
			avg_nodes_visited REAL NOT NULL,
			catapult_usage_pct REAL NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_run_records_created_at ON run_records(created_at);

		CREATE TABLE IF NOT EXISTS catapult_snapshots (
			run_id TEXT NOT NULL,
			signature INTEGER NOT NULL,
			nodes TEXT NOT NULL,
			PRIMARY KEY (run_id, signature)
		);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("snapshot: creating schema: %w", err)
	}
	return nil
}

// RecordRun inserts a new RunRecord, assigning it a fresh UUID when RunID is
// empty, and returns the record's run id.
func (s *Store) RecordRun(r RunRecord) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO run_records
		(run_id, threads, beam_width, num_neighbors, num_queries, checksum, qps,
		 avg_dists_computed, avg_nodes_visited, catapult_usage_pct, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	// Fixed-width UTC timestamps sort chronologically as text, which
	// ListRuns' ORDER BY created_at relies on.
	_, err := s.db.Exec(query,
		r.RunID, r.Threads, r.BeamWidth, r.NumNeighbors, r.NumQueries, r.Checksum, r.QPS,
		r.AvgDistsComputed, r.AvgNodesVisited, r.CatapultUsagePct, r.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000Z07:00"),
	)
	if err != nil {
		return "", fmt.Errorf("snapshot: inserting run record: %w", err)
	}
	return r.RunID, nil
}

// GetRun retrieves a RunRecord by id.
func (s *Store) GetRun(runID string) (*RunRecord, error) {
	query := `
		SELECT run_id, threads, beam_width, num_neighbors, num_queries, checksum, qps,
		       avg_dists_computed, avg_nodes_visited, catapult_usage_pct, created_at
		FROM run_records WHERE run_id = ?
	`
	row := s.db.QueryRow(query, runID)
	return scanRunRecord(row)
}

// ListRuns returns every persisted RunRecord, most recent first.
func (s *Store) ListRuns() ([]RunRecord, error) {
	query := `
		SELECT run_id, threads, beam_width, num_neighbors, num_queries, checksum, qps,
		       avg_dists_computed, avg_nodes_visited, catapult_usage_pct, created_at
		FROM run_records ORDER BY created_at DESC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("snapshot: listing runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []RunRecord
	for rows.Next() {
		r, err := scanRunRecordRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// RecordCatapultSnapshot stores one bucket's FIFO contents for a run.
func (s *Store) RecordCatapultSnapshot(snap CatapultSnapshot) error {
	nodesJSON, err := json.Marshal(snap.Nodes)
	if err != nil {
		return fmt.Errorf("snapshot: marshaling nodes: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO catapult_snapshots (run_id, signature, nodes)
		VALUES (?, ?, ?)
	`
	if _, err := s.db.Exec(query, snap.RunID, snap.Signature, string(nodesJSON)); err != nil {
		return fmt.Errorf("snapshot: inserting catapult snapshot: %w", err)
	}
	return nil
}

// GetCatapultSnapshot retrieves one bucket's snapshot for a run.
func (s *Store) GetCatapultSnapshot(runID string, signature uint64) (*CatapultSnapshot, error) {
	query := `SELECT run_id, signature, nodes FROM catapult_snapshots WHERE run_id = ? AND signature = ?`
	row := s.db.QueryRow(query, runID, signature)

	var snap CatapultSnapshot
	var nodesJSON string
	if err := row.Scan(&snap.RunID, &snap.Signature, &nodesJSON); err != nil {
		return nil, fmt.Errorf("snapshot: reading catapult snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(nodesJSON), &snap.Nodes); err != nil {
		return nil, fmt.Errorf("snapshot: unmarshaling nodes: %w", err)
	}
	return &snap, nil
}

// ClearCatapultSnapshots deletes every persisted catapult bucket snapshot,
// leaving run records untouched.
func (s *Store) ClearCatapultSnapshots() error {
	if _, err := s.db.Exec("DELETE FROM catapult_snapshots"); err != nil {
		return fmt.Errorf("snapshot: clearing catapult snapshots: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanRunRecord(row *sql.Row) (*RunRecord, error) {
	var r RunRecord
	var createdAt string
	err := row.Scan(&r.RunID, &r.Threads, &r.BeamWidth, &r.NumNeighbors, &r.NumQueries,
		&r.Checksum, &r.QPS, &r.AvgDistsComputed, &r.AvgNodesVisited, &r.CatapultUsagePct, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("snapshot: reading run record: %w", err)
	}
	r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("snapshot: parsing created_at: %w", err)
	}
	return &r, nil
}

func scanRunRecordRow(rows *sql.Rows) (*RunRecord, error) {
	var r RunRecord
	var createdAt string
	err := rows.Scan(&r.RunID, &r.Threads, &r.BeamWidth, &r.NumNeighbors, &r.NumQueries,
		&r.Checksum, &r.QPS, &r.AvgDistsComputed, &r.AvgNodesVisited, &r.CatapultUsagePct, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("snapshot: reading run record: %w", err)
	}
	r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("snapshot: parsing created_at: %w", err)
	}
	return &r, nil
}
