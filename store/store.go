package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/katalvlaran/metavuln/snapshot"
	"github.com/katalvlaran/metavuln/sweep"
)

// Run kinds.
const (
	KindCritical = "critical"
	KindSweep    = "sweep"
)

// ErrNotFound indicates the requested run, stage or row does not exist.
var ErrNotFound = errors.New("store: not found")

// Run describes one stored analysis run.
type Run struct {
	ID        string
	Kind      string
	Model     string
	CreatedAt time.Time
}

// Store is a SQLite-backed run store. It is safe for concurrent use.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		model TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		run_id TEXT NOT NULL REFERENCES runs(id),
		stage TEXT NOT NULL,
		payload BLOB NOT NULL,
		PRIMARY KEY (run_id, stage)
	)`,
	`CREATE TABLE IF NOT EXISTS sweep_rows (
		run_id TEXT NOT NULL REFERENCES runs(id),
		idx INTEGER NOT NULL,
		label TEXT NOT NULL,
		payload BLOB NOT NULL,
		PRIMARY KEY (run_id, idx)
	)`,
}

// Open opens or creates the database at path, creating parent directories.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "metavuln.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create tables: %w", err)
		}
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the database path.
func (s *Store) Path() string { return s.path }

// NewRun records a run of kind for model under a fresh UUID.
func (s *Store) NewRun(ctx context.Context, kind, model string) (Run, error) {
	r := Run{ID: uuid.NewString(), Kind: kind, Model: model, CreatedAt: time.Now().UTC()}
	return r, s.SaveRun(ctx, r)
}

// SaveRun upserts r.
func (s *Store) SaveRun(ctx context.Context, r Run) error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("SaveRun: run id %q: %w", r.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(id,kind,model,created_at) VALUES(?,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET kind=excluded.kind, model=excluded.model, created_at=excluded.created_at`,
		r.ID, r.Kind, r.Model, r.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("SaveRun: %w", err)
	}
	return nil
}

// Runs lists every run, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, kind, model, created_at FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("Runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Kind, &r.Model, &created); err != nil {
			return nil, fmt.Errorf("Runs: scan: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("Runs: created_at: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveSnapshot upserts the JSON form of snap under runID and its stage.
func (s *Store) SaveSnapshot(ctx context.Context, runID string, snap *snapshot.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("SaveSnapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots(run_id,stage,payload) VALUES(?,?,?)
		 ON CONFLICT(run_id,stage) DO UPDATE SET payload=excluded.payload`,
		runID, snap.Stage(), data)
	if err != nil {
		return fmt.Errorf("SaveSnapshot: %s/%s: %w", runID, snap.Stage(), err)
	}
	return nil
}

// LoadSnapshotJSON returns the stored JSON of one stage.
func (s *Store) LoadSnapshotJSON(ctx context.Context, runID, stage string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE run_id = ? AND stage = ?`, runID, stage).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("LoadSnapshotJSON: %s/%s: %w", runID, stage, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("LoadSnapshotJSON: %w", err)
	}
	return data, nil
}

// SaveSweep upserts every row of res under runID in one transaction.
func (s *Store) SaveSweep(ctx context.Context, runID string, res *sweep.Result) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("SaveSweep: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for i, row := range res.Rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("SaveSweep: row %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sweep_rows(run_id,idx,label,payload) VALUES(?,?,?,?)
			 ON CONFLICT(run_id,idx) DO UPDATE SET label=excluded.label, payload=excluded.payload`,
			runID, i, row.Label, data); err != nil {
			return fmt.Errorf("SaveSweep: row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("SaveSweep: %w", err)
	}
	return nil
}

// SweepRows returns the stored rows of runID in order. Fraction is
// recovered from the label, NaN for the initial row.
func (s *Store) SweepRows(ctx context.Context, runID string) ([]sweep.Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, payload FROM sweep_rows WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("SweepRows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []sweep.Row
	for rows.Next() {
		var label string
		var data []byte
		if err := rows.Scan(&label, &data); err != nil {
			return nil, fmt.Errorf("SweepRows: scan: %w", err)
		}
		var row sweep.Row
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, fmt.Errorf("SweepRows: decode %s: %w", label, err)
		}
		row.Fraction = math.NaN()
		if f, err := strconv.ParseFloat(label, 64); err == nil {
			row.Fraction = f
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("SweepRows: %s: %w", runID, ErrNotFound)
	}
	return out, nil
}
