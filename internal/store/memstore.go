package store

import (
	"errors"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store for tests and serverless MCP sessions.
// Safe for concurrent use.
type MemStore struct {
	mu    sync.Mutex
	next  int64
	snaps []*Snapshot
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{next: 1}
}

func (m *MemStore) SaveSnapshot(snap *Snapshot) (int64, error) {
	if snap == nil {
		return 0, errors.New("snapshot is nil")
	}
	if snap.Kind != KindGUI && snap.Kind != KindAPI {
		return 0, fmt.Errorf("unknown snapshot kind %q", snap.Kind)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *snap
	cp.ID = m.next
	cp.CreatedAt = nowUTC()
	m.next++
	m.snaps = append(m.snaps, &cp)
	return cp.ID, nil
}

func (m *MemStore) GetSnapshot(id int64) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.snaps {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemStore) LatestSnapshot(kind string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.snaps) - 1; i >= 0; i-- {
		if m.snaps[i].Kind == kind {
			cp := *m.snaps[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemStore) ListSnapshots() ([]*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Snapshot, 0, len(m.snaps))
	for i := len(m.snaps) - 1; i >= 0; i-- {
		cp := *m.snaps[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemStore) ListSnapshotsByRun(runID string) ([]*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Snapshot
	for i := len(m.snaps) - 1; i >= 0; i-- {
		if m.snaps[i].RunID == runID {
			cp := *m.snaps[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemStore) Close() error { return nil }
