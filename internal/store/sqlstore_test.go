package store

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *SqlStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), ".webforge", "webforge.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSqlStore_SaveAndGet(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SaveSnapshot(&Snapshot{
		RunID:     "run-1",
		Kind:      KindGUI,
		AppURL:    "https://app.test",
		CaseCount: 5,
		Overall:   82,
		Suite:     json.RawMessage(`[{"id":"t1"}]`),
		Quality:   json.RawMessage(`{"overall":82}`),
	})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if id == 0 {
		t.Fatal("id not assigned")
	}

	got, err := s.GetSnapshot(id)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if got == nil {
		t.Fatal("snapshot not found after save")
	}
	if got.RunID != "run-1" || got.Kind != KindGUI || got.AppURL != "https://app.test" ||
		got.CaseCount != 5 || got.Overall != 82 {
		t.Errorf("round trip = %+v", got)
	}
	if string(got.Suite) != `[{"id":"t1"}]` {
		t.Errorf("suite payload = %s", got.Suite)
	}
	if string(got.Quality) != `{"overall":82}` {
		t.Errorf("quality payload = %s", got.Quality)
	}
	if got.CreatedAt == "" {
		t.Error("CreatedAt not assigned on save")
	}
}

func TestSqlStore_GetMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.GetSnapshot(42)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if got != nil {
		t.Errorf("missing snapshot = %+v, want nil", got)
	}
}

func TestSqlStore_RejectsBadSnapshots(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.SaveSnapshot(nil); err == nil {
		t.Error("nil snapshot accepted")
	}
	if _, err := s.SaveSnapshot(&Snapshot{Kind: "mobile", Suite: json.RawMessage(`[]`)}); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestSqlStore_LatestByKind(t *testing.T) {
	s := openTestStore(t)
	saveSQL(t, s, "run-1", KindGUI, 70)
	saveSQL(t, s, "run-1", KindAPI, 75)
	saveSQL(t, s, "run-2", KindGUI, 90)

	latest, err := s.LatestSnapshot(KindGUI)
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if latest == nil || latest.RunID != "run-2" {
		t.Errorf("latest gui = %+v, want run-2", latest)
	}

	latest, err = s.LatestSnapshot(KindAPI)
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if latest == nil || latest.Overall != 75 {
		t.Errorf("latest api = %+v, want the run-1 api snapshot", latest)
	}

	latest, err = s.LatestSnapshot("mobile")
	if err != nil {
		t.Fatalf("LatestSnapshot unknown kind: %v", err)
	}
	if latest != nil {
		t.Errorf("latest of unknown kind = %+v, want nil", latest)
	}
}

func TestSqlStore_ListByRun(t *testing.T) {
	s := openTestStore(t)
	saveSQL(t, s, "run-1", KindGUI, 70)
	saveSQL(t, s, "run-2", KindGUI, 80)
	saveSQL(t, s, "run-1", KindAPI, 75)

	list, err := s.ListSnapshotsByRun("run-1")
	if err != nil {
		t.Fatalf("ListSnapshotsByRun: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("run-1 snapshots = %d, want 2", len(list))
	}
	// Newest first.
	if list[0].Kind != KindAPI || list[1].Kind != KindGUI {
		t.Errorf("order = %s, %s, want api then gui", list[0].Kind, list[1].Kind)
	}

	all, err := s.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all snapshots = %d, want 3", len(all))
	}
}

func TestSqlStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "webforge.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id := saveSQL(t, s, "run-1", KindGUI, 70)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.GetSnapshot(id)
	if err != nil {
		t.Fatalf("GetSnapshot after reopen: %v", err)
	}
	if got == nil || got.RunID != "run-1" {
		t.Errorf("snapshot after reopen = %+v", got)
	}
}

func saveSQL(t *testing.T, s *SqlStore, runID, kind string, overall int) int64 {
	t.Helper()
	id, err := s.SaveSnapshot(&Snapshot{
		RunID:   runID,
		Kind:    kind,
		Overall: overall,
		Suite:   json.RawMessage(`[]`),
		Quality: json.RawMessage(`{}`),
	})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	return id
}
