package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// nullStr converts a sql.NullString to a plain string (empty if null).
func nullStr(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	kind        TEXT NOT NULL CHECK (kind IN ('gui', 'api')),
	app_url     TEXT,
	case_count  INTEGER NOT NULL DEFAULT 0,
	overall     INTEGER NOT NULL DEFAULT 0,
	suite       TEXT NOT NULL,
	quality     TEXT,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_kind ON snapshots(kind, created_at);
`

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. .webforge) if it does not exist.
func Open(path string) (*SqlStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	var v int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersion); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != schemaVersion {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

// Close closes the database connection.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

// SaveSnapshot inserts a snapshot and returns its id. CreatedAt is assigned
// here; a caller-supplied value is ignored.
func (s *SqlStore) SaveSnapshot(snap *Snapshot) (int64, error) {
	if snap == nil {
		return 0, errors.New("snapshot is nil")
	}
	if snap.Kind != KindGUI && snap.Kind != KindAPI {
		return 0, fmt.Errorf("unknown snapshot kind %q", snap.Kind)
	}
	res, err := s.db.Exec(
		`INSERT INTO snapshots(run_id, kind, app_url, case_count, overall, suite, quality, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.RunID, snap.Kind, snap.AppURL, snap.CaseCount, snap.Overall,
		string(snap.Suite), string(snap.Quality), nowUTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

const snapshotCols = `id, run_id, kind, app_url, case_count, overall, suite, quality, created_at`

func scanSnapshot(row interface{ Scan(...any) error }) (*Snapshot, error) {
	var snap Snapshot
	var appURL, quality sql.NullString
	var suite string
	err := row.Scan(&snap.ID, &snap.RunID, &snap.Kind, &appURL,
		&snap.CaseCount, &snap.Overall, &suite, &quality, &snap.CreatedAt)
	if err != nil {
		return nil, err
	}
	snap.AppURL = nullStr(appURL)
	snap.Suite = []byte(suite)
	if quality.Valid {
		snap.Quality = []byte(quality.String)
	}
	return &snap, nil
}

// GetSnapshot returns the snapshot by id, or nil if not found.
func (s *SqlStore) GetSnapshot(id int64) (*Snapshot, error) {
	row := s.db.QueryRow("SELECT "+snapshotCols+" FROM snapshots WHERE id = ?", id)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return snap, nil
}

// LatestSnapshot returns the most recent snapshot of the given kind, or nil
// if none exists.
func (s *SqlStore) LatestSnapshot(kind string) (*Snapshot, error) {
	row := s.db.QueryRow(
		"SELECT "+snapshotCols+" FROM snapshots WHERE kind = ? ORDER BY id DESC LIMIT 1",
		kind,
	)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	return snap, nil
}

// ListSnapshots returns all snapshots, newest first.
func (s *SqlStore) ListSnapshots() ([]*Snapshot, error) {
	return s.list("SELECT "+snapshotCols+" FROM snapshots ORDER BY id DESC", nil)
}

// ListSnapshotsByRun returns the snapshots of one run, newest first.
func (s *SqlStore) ListSnapshotsByRun(runID string) ([]*Snapshot, error) {
	return s.list("SELECT "+snapshotCols+" FROM snapshots WHERE run_id = ? ORDER BY id DESC", []any{runID})
}

func (s *SqlStore) list(query string, args []any) ([]*Snapshot, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	var out []*Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return out, nil
}
