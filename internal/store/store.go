// Package store persists generated suite snapshots so runs can be compared
// and replayed. Backed by SQLite per workspace, with an in-memory
// implementation for tests and MCP sessions without a workspace.
package store

import "encoding/json"

// DefaultDBPath is the default relative path for the SQLite DB (per-workspace).
// Resolve against cwd or workspace root; Open() creates the parent dir (.webforge).
const DefaultDBPath = ".webforge/webforge.db"

// Snapshot kinds. A run usually writes one of each.
const (
	KindGUI = "gui"
	KindAPI = "api"
)

// Snapshot is one persisted suite: the validated test cases plus the quality
// report, as produced by a single run. Suite and Quality are stored verbatim
// as JSON so the schema does not chase the case types.
type Snapshot struct {
	ID        int64           `json:"id"`
	RunID     string          `json:"runId"`
	Kind      string          `json:"kind"`
	AppURL    string          `json:"appUrl"`
	CaseCount int             `json:"caseCount"`
	Overall   int             `json:"overall"`
	Suite     json.RawMessage `json:"suite"`
	Quality   json.RawMessage `json:"quality"`
	CreatedAt string          `json:"createdAt"`
}

// Store is the persistence facade. CLI and MCP use only this interface;
// implementation is SQLite or in-memory.
type Store interface {
	SaveSnapshot(snap *Snapshot) (id int64, err error)
	GetSnapshot(id int64) (*Snapshot, error)
	LatestSnapshot(kind string) (*Snapshot, error)
	ListSnapshots() ([]*Snapshot, error)
	ListSnapshotsByRun(runID string) ([]*Snapshot, error)
	Close() error
}
