// Package mcp exposes suite generation, edge-case synthesis, quality
// analysis and snapshot retrieval as MCP tools so coding agents can drive
// webforge over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"webforge/internal/edgecase"
	"webforge/internal/generate"
	"webforge/internal/llm"
	"webforge/internal/logging"
	"webforge/internal/quality"
	"webforge/internal/store"
	"webforge/internal/testcase"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server around the generation pipeline.
type Server struct {
	MCPServer *sdkmcp.Server

	client llm.Client
	store  store.Store
}

// NewServer creates an MCP server with generation and analysis tools.
// The store may be a MemStore when no workspace DB is wanted.
func NewServer(client llm.Client, st store.Store, version string) *Server {
	s := &Server{client: client, store: st}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "webforge", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "generate_tests",
		Description: "Generate a GUI or API test suite for an application from its page structure or observed endpoints. Returns the validated suite, its quality score, and a snapshot id.",
	}, s.handleGenerateTests)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "synthesize_edge_cases",
		Description: "Synthesize deterministic edge-case tests (boundary, security, validation, accessibility, performance) from page structure or endpoints. No LLM call.",
	}, s.handleSynthesizeEdgeCases)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "analyze_quality",
		Description: "Score an existing test suite across completeness, maintainability, reliability, coverage and performance, with itemized issues.",
	}, s.handleAnalyzeQuality)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_snapshot",
		Description: "Fetch a stored suite snapshot by id, or the latest snapshot of a kind (gui or api).",
	}, s.handleGetSnapshot)
}

// --- Tool input/output types ---

type generateTestsInput struct {
	Kind          string          `json:"kind" jsonschema:"suite kind (gui or api)"`
	AppURL        string          `json:"app_url" jsonschema:"base URL of the application under test"`
	RunID         string          `json:"run_id,omitempty" jsonschema:"run identifier to group snapshots (optional)"`
	Page          json.RawMessage `json:"page,omitempty" jsonschema:"discovered page structure JSON for gui suites"`
	Endpoints     json.RawMessage `json:"endpoints,omitempty" jsonschema:"observed endpoint list JSON for api suites"`
	UserJourneys  []string        `json:"user_journeys,omitempty" jsonschema:"user journey descriptions to steer generation"`
	MaxTestCases  int             `json:"max_test_cases,omitempty" jsonschema:"cap on llm-generated cases (0 = default)"`
	SkipEdgeCases bool            `json:"skip_edge_cases,omitempty" jsonschema:"suppress deterministic edge-case synthesis"`
}

type generateTestsOutput struct {
	Kind         string          `json:"kind"`
	CaseCount    int             `json:"case_count"`
	UsedFallback bool            `json:"used_fallback"`
	Suite        json.RawMessage `json:"suite"`
	Quality      quality.Score   `json:"quality"`
	SnapshotID   int64           `json:"snapshot_id,omitempty"`
}

type synthesizeEdgeCasesInput struct {
	Kind      string          `json:"kind" jsonschema:"suite kind (gui or api)"`
	Page      json.RawMessage `json:"page,omitempty" jsonschema:"discovered page structure JSON for gui suites"`
	Endpoints json.RawMessage `json:"endpoints,omitempty" jsonschema:"observed endpoint list JSON for api suites"`
	Config    json.RawMessage `json:"config,omitempty" jsonschema:"edge-case category toggles (defaults: all enabled)"`
}

type synthesizeEdgeCasesOutput struct {
	Kind      string          `json:"kind"`
	CaseCount int             `json:"case_count"`
	Cases     json.RawMessage `json:"cases"`
}

type analyzeQualityInput struct {
	Kind  string          `json:"kind" jsonschema:"suite kind (gui or api)"`
	Suite json.RawMessage `json:"suite" jsonschema:"test case array to score"`
}

type analyzeQualityOutput struct {
	Kind    string        `json:"kind"`
	Quality quality.Score `json:"quality"`
}

type getSnapshotInput struct {
	ID   int64  `json:"id,omitempty" jsonschema:"snapshot id (0 = latest of kind)"`
	Kind string `json:"kind,omitempty" jsonschema:"kind for latest lookup (gui or api)"`
}

type getSnapshotOutput struct {
	Found    bool            `json:"found"`
	Snapshot *store.Snapshot `json:"snapshot,omitempty"`
}

// --- Tool handlers ---

func (s *Server) handleGenerateTests(ctx context.Context, _ *sdkmcp.CallToolRequest, input generateTestsInput) (*sdkmcp.CallToolResult, generateTestsOutput, error) {
	log := logging.New("mcp")
	if input.AppURL == "" {
		return nil, generateTestsOutput{}, fmt.Errorf("app_url is required")
	}

	req, err := buildRequest(input.AppURL, input.Page, input.Endpoints)
	if err != nil {
		return nil, generateTestsOutput{}, err
	}
	req.UserJourneys = input.UserJourneys
	req.MaxTestCases = input.MaxTestCases
	if input.SkipEdgeCases {
		req.EdgeCases = edgecase.Config{}
	}

	var (
		suite        any
		score        quality.Score
		usedFallback bool
		caseCount    int
	)
	switch input.Kind {
	case store.KindGUI:
		res, err := generate.GUISuite(ctx, s.client, req)
		if err != nil {
			return nil, generateTestsOutput{}, fmt.Errorf("generate gui suite: %w", err)
		}
		suite, score, usedFallback, caseCount = res.Cases, res.Quality, res.UsedFallback, len(res.Cases)
	case store.KindAPI:
		res, err := generate.APISuite(ctx, s.client, req)
		if err != nil {
			return nil, generateTestsOutput{}, fmt.Errorf("generate api suite: %w", err)
		}
		suite, score, usedFallback, caseCount = res.Cases, res.Quality, res.UsedFallback, len(res.Cases)
	default:
		return nil, generateTestsOutput{}, fmt.Errorf("unknown kind %q (want gui or api)", input.Kind)
	}

	suiteJSON, err := json.Marshal(suite)
	if err != nil {
		return nil, generateTestsOutput{}, fmt.Errorf("marshal suite: %w", err)
	}
	out := generateTestsOutput{
		Kind:         input.Kind,
		CaseCount:    caseCount,
		UsedFallback: usedFallback,
		Suite:        suiteJSON,
		Quality:      score,
	}

	if s.store != nil {
		qualityJSON, _ := json.Marshal(score)
		id, err := s.store.SaveSnapshot(&store.Snapshot{
			RunID:     input.RunID,
			Kind:      input.Kind,
			AppURL:    input.AppURL,
			CaseCount: caseCount,
			Overall:   score.Overall,
			Suite:     suiteJSON,
			Quality:   qualityJSON,
		})
		if err != nil {
			log.Warn("snapshot not saved", "error", err)
		} else {
			out.SnapshotID = id
		}
	}

	return nil, out, nil
}

func (s *Server) handleSynthesizeEdgeCases(ctx context.Context, _ *sdkmcp.CallToolRequest, input synthesizeEdgeCasesInput) (*sdkmcp.CallToolResult, synthesizeEdgeCasesOutput, error) {
	cfg := edgecase.DefaultConfig()
	if len(input.Config) > 0 {
		if err := json.Unmarshal(input.Config, &cfg); err != nil {
			return nil, synthesizeEdgeCasesOutput{}, fmt.Errorf("parse config: %w", err)
		}
	}

	req, err := buildRequest("", input.Page, input.Endpoints)
	if err != nil {
		return nil, synthesizeEdgeCasesOutput{}, err
	}

	var cases any
	var count int
	switch input.Kind {
	case store.KindGUI:
		list := edgecase.GUI(req.Page, cfg, testcase.NewIDSet())
		cases, count = list, len(list)
	case store.KindAPI:
		list := edgecase.API(req.Endpoints, cfg, testcase.NewIDSet())
		cases, count = list, len(list)
	default:
		return nil, synthesizeEdgeCasesOutput{}, fmt.Errorf("unknown kind %q (want gui or api)", input.Kind)
	}

	casesJSON, err := json.Marshal(cases)
	if err != nil {
		return nil, synthesizeEdgeCasesOutput{}, fmt.Errorf("marshal cases: %w", err)
	}
	return nil, synthesizeEdgeCasesOutput{Kind: input.Kind, CaseCount: count, Cases: casesJSON}, nil
}

func (s *Server) handleAnalyzeQuality(ctx context.Context, _ *sdkmcp.CallToolRequest, input analyzeQualityInput) (*sdkmcp.CallToolResult, analyzeQualityOutput, error) {
	if len(input.Suite) == 0 {
		return nil, analyzeQualityOutput{}, fmt.Errorf("suite is required")
	}

	switch input.Kind {
	case store.KindGUI:
		var cases []testcase.TestCase
		if err := json.Unmarshal(input.Suite, &cases); err != nil {
			return nil, analyzeQualityOutput{}, fmt.Errorf("parse gui suite: %w", err)
		}
		return nil, analyzeQualityOutput{Kind: input.Kind, Quality: quality.AnalyzeGUI(cases)}, nil
	case store.KindAPI:
		var cases []testcase.APITestCase
		if err := json.Unmarshal(input.Suite, &cases); err != nil {
			return nil, analyzeQualityOutput{}, fmt.Errorf("parse api suite: %w", err)
		}
		return nil, analyzeQualityOutput{Kind: input.Kind, Quality: quality.AnalyzeAPI(cases)}, nil
	}
	return nil, analyzeQualityOutput{}, fmt.Errorf("unknown kind %q (want gui or api)", input.Kind)
}

func (s *Server) handleGetSnapshot(ctx context.Context, _ *sdkmcp.CallToolRequest, input getSnapshotInput) (*sdkmcp.CallToolResult, getSnapshotOutput, error) {
	if s.store == nil {
		return nil, getSnapshotOutput{}, fmt.Errorf("no snapshot store configured")
	}

	var snap *store.Snapshot
	var err error
	switch {
	case input.ID > 0:
		snap, err = s.store.GetSnapshot(input.ID)
	case input.Kind != "":
		snap, err = s.store.LatestSnapshot(input.Kind)
	default:
		return nil, getSnapshotOutput{}, fmt.Errorf("id or kind is required")
	}
	if err != nil {
		return nil, getSnapshotOutput{}, fmt.Errorf("get snapshot: %w", err)
	}
	if snap == nil {
		return nil, getSnapshotOutput{Found: false}, nil
	}
	return nil, getSnapshotOutput{Found: true, Snapshot: snap}, nil
}

// buildRequest decodes the optional page/endpoint payloads into a pipeline
// request.
func buildRequest(appURL string, pageJSON, endpointsJSON json.RawMessage) (generate.Request, error) {
	req := generate.Request{AppURL: appURL, EdgeCases: edgecase.DefaultConfig()}
	if len(pageJSON) > 0 {
		if err := json.Unmarshal(pageJSON, &req.Page); err != nil {
			return generate.Request{}, fmt.Errorf("parse page: %w", err)
		}
	}
	if len(endpointsJSON) > 0 {
		if err := json.Unmarshal(endpointsJSON, &req.Endpoints); err != nil {
			return generate.Request{}, fmt.Errorf("parse endpoints: %w", err)
		}
	}
	return req, nil
}
