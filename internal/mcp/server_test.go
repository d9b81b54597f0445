package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"webforge/internal/llm"
	"webforge/internal/store"
	"webforge/internal/testcase"
)

func newTestServer(responses ...json.RawMessage) (*Server, *store.MemStore) {
	st := store.NewMemStore()
	stub := &llm.Stub{Responses: responses}
	return NewServer(stub, st, "test"), st
}

const pageJSON = `{
	"title": "Shop",
	"url": "https://shop.test",
	"forms": [{"selector": "#f", "inputs": [{"selector": "#email", "type": "email", "required": true}]}],
	"inputs": [{"selector": "#email", "type": "email", "required": true}]
}`

const endpointsJSON = `[
	{"method": "GET", "url": "/api/products", "status": 200},
	{"method": "POST", "url": "/api/orders", "status": 201}
]`

func TestGenerateTests_GUI(t *testing.T) {
	s, st := newTestServer(json.RawMessage(`[
		{"id":"t1","name":"Smoke","steps":[{"action":"goto","value":"https://shop.test"}],
		 "assertions":[{"type":"visible","selector":"body"}]}
	]`))

	_, out, err := s.handleGenerateTests(context.Background(), nil, generateTestsInput{
		Kind:   store.KindGUI,
		AppURL: "https://shop.test",
		RunID:  "run-1",
		Page:   json.RawMessage(pageJSON),
	})
	if err != nil {
		t.Fatalf("generate_tests: %v", err)
	}
	if out.UsedFallback {
		t.Error("fallback used with a valid stub response")
	}
	if out.CaseCount == 0 || len(out.Suite) == 0 {
		t.Fatalf("empty suite: %+v", out)
	}
	if out.SnapshotID == 0 {
		t.Error("snapshot not persisted")
	}

	snap, err := st.GetSnapshot(out.SnapshotID)
	if err != nil || snap == nil {
		t.Fatalf("snapshot lookup: %v, %v", snap, err)
	}
	if snap.RunID != "run-1" || snap.Kind != store.KindGUI {
		t.Errorf("snapshot meta = %+v", snap)
	}
}

func TestGenerateTests_RequiresAppURL(t *testing.T) {
	s, _ := newTestServer()
	_, _, err := s.handleGenerateTests(context.Background(), nil, generateTestsInput{Kind: store.KindGUI})
	if err == nil {
		t.Error("missing app_url accepted")
	}
}

func TestGenerateTests_UnknownKind(t *testing.T) {
	s, _ := newTestServer(json.RawMessage(`[]`))
	_, _, err := s.handleGenerateTests(context.Background(), nil, generateTestsInput{
		Kind: "mobile", AppURL: "https://shop.test",
	})
	if err == nil || !strings.Contains(err.Error(), "mobile") {
		t.Errorf("unknown kind error = %v", err)
	}
}

func TestSynthesizeEdgeCases_API(t *testing.T) {
	s, _ := newTestServer()
	_, out, err := s.handleSynthesizeEdgeCases(context.Background(), nil, synthesizeEdgeCasesInput{
		Kind:      store.KindAPI,
		Endpoints: json.RawMessage(endpointsJSON),
	})
	if err != nil {
		t.Fatalf("synthesize_edge_cases: %v", err)
	}
	if out.CaseCount == 0 {
		t.Fatal("no edge cases synthesized from endpoints")
	}
	var cases []testcase.APITestCase
	if err := json.Unmarshal(out.Cases, &cases); err != nil {
		t.Fatalf("cases payload: %v", err)
	}
	if len(cases) != out.CaseCount {
		t.Errorf("case_count = %d, payload has %d", out.CaseCount, len(cases))
	}
}

func TestSynthesizeEdgeCases_ConfigToggle(t *testing.T) {
	s, _ := newTestServer()
	_, out, err := s.handleSynthesizeEdgeCases(context.Background(), nil, synthesizeEdgeCasesInput{
		Kind:      store.KindAPI,
		Endpoints: json.RawMessage(endpointsJSON),
		Config:    json.RawMessage(`{"includeSecurityTests":false,"includeBoundaryTests":false,"includeDataValidationTests":false,"includePerformanceEdgeCases":true,"includeAccessibilityTests":false}`),
	})
	if err != nil {
		t.Fatalf("synthesize_edge_cases: %v", err)
	}
	var cases []testcase.APITestCase
	if err := json.Unmarshal(out.Cases, &cases); err != nil {
		t.Fatal(err)
	}
	for _, c := range cases {
		if c.Category != "performance" {
			t.Errorf("category %q synthesized with only performance enabled", c.Category)
		}
	}
}

func TestAnalyzeQuality_GUI(t *testing.T) {
	s, _ := newTestServer()
	suite := []testcase.TestCase{{
		ID: "t1", Name: "Login", Description: "A login test with enough detail",
		Priority: testcase.PriorityCritical, Category: "authentication",
	}}
	data, _ := json.Marshal(suite)
	_, out, err := s.handleAnalyzeQuality(context.Background(), nil, analyzeQualityInput{
		Kind: store.KindGUI, Suite: data,
	})
	if err != nil {
		t.Fatalf("analyze_quality: %v", err)
	}
	if out.Quality.Overall < 0 || out.Quality.Overall > 100 {
		t.Errorf("overall = %d out of bounds", out.Quality.Overall)
	}
}

func TestAnalyzeQuality_BadPayload(t *testing.T) {
	s, _ := newTestServer()
	_, _, err := s.handleAnalyzeQuality(context.Background(), nil, analyzeQualityInput{
		Kind: store.KindGUI, Suite: json.RawMessage(`{"not":"an array"}`),
	})
	if err == nil {
		t.Error("non-array suite accepted")
	}
	_, _, err = s.handleAnalyzeQuality(context.Background(), nil, analyzeQualityInput{Kind: store.KindGUI})
	if err == nil {
		t.Error("empty suite accepted")
	}
}

func TestGetSnapshot(t *testing.T) {
	s, st := newTestServer()
	id, err := st.SaveSnapshot(&store.Snapshot{
		RunID: "run-1", Kind: store.KindAPI, Suite: json.RawMessage(`[]`),
	})
	if err != nil {
		t.Fatal(err)
	}

	_, out, err := s.handleGetSnapshot(context.Background(), nil, getSnapshotInput{ID: id})
	if err != nil {
		t.Fatalf("get_snapshot by id: %v", err)
	}
	if !out.Found || out.Snapshot.RunID != "run-1" {
		t.Errorf("by id = %+v", out)
	}

	_, out, err = s.handleGetSnapshot(context.Background(), nil, getSnapshotInput{Kind: store.KindAPI})
	if err != nil {
		t.Fatalf("get_snapshot latest: %v", err)
	}
	if !out.Found || out.Snapshot.ID != id {
		t.Errorf("latest = %+v", out)
	}

	_, out, err = s.handleGetSnapshot(context.Background(), nil, getSnapshotInput{ID: 999})
	if err != nil {
		t.Fatalf("get_snapshot missing: %v", err)
	}
	if out.Found {
		t.Error("missing snapshot reported found")
	}

	if _, _, err = s.handleGetSnapshot(context.Background(), nil, getSnapshotInput{}); err == nil {
		t.Error("empty selector accepted")
	}
}

func TestGenerateTests_FallbackOnProviderError(t *testing.T) {
	st := store.NewMemStore()
	s := NewServer(&llm.Stub{Err: errors.New("provider down")}, st, "test")
	_, out, err := s.handleGenerateTests(context.Background(), nil, generateTestsInput{
		Kind: store.KindGUI, AppURL: "https://shop.test", SkipEdgeCases: true,
	})
	if err != nil {
		t.Fatalf("generate_tests: %v", err)
	}
	if !out.UsedFallback {
		t.Error("fallback flag not set when provider errored")
	}
	if out.CaseCount != 1 {
		t.Errorf("fallback case count = %d, want 1", out.CaseCount)
	}
}
