// Package generate wires the pipeline: structural facts in, a validated,
// de-duplicated, prioritized and quality-scored test collection out. The
// LLM is consulted but never trusted: its output passes through validation,
// and any unusable response degrades to the deterministic fallback suite
// instead of failing the run.
package generate

import (
	"context"
	"log/slog"

	"webforge/internal/discover"
	"webforge/internal/edgecase"
	"webforge/internal/llm"
	"webforge/internal/logging"
	"webforge/internal/prompt"
	"webforge/internal/quality"
	"webforge/internal/testcase"
	"webforge/internal/validate"
)

// Request describes one generation run.
type Request struct {
	AppURL       string
	Page         *discover.PageInfo
	Endpoints    []discover.Endpoint
	UserJourneys []string
	MaxTestCases int
	EdgeCases    edgecase.Config
}

// GUIResult is a finished GUI collection with its quality report.
type GUIResult struct {
	Cases        []testcase.TestCase `json:"cases"`
	Quality      quality.Score       `json:"quality"`
	UsedFallback bool                `json:"usedFallback"`
}

// APIResult is a finished API collection with its quality report.
type APIResult struct {
	Cases        []testcase.APITestCase `json:"cases"`
	Quality      quality.Score          `json:"quality"`
	UsedFallback bool                   `json:"usedFallback"`
}

// GUISuite runs the full GUI pipeline. LLM failures and malformed output
// are recovered by the fallback suite; the returned error is reserved for
// programming mistakes (a broken prompt template).
func GUISuite(ctx context.Context, client llm.Client, req Request) (*GUIResult, error) {
	log := logging.New("generate")
	opts := validate.Options{AppURL: req.AppURL, MaxTestCases: req.MaxTestCases}

	p, err := prompt.GUI(prompt.Params{
		AppURL:       req.AppURL,
		Page:         req.Page,
		UserJourneys: req.UserJourneys,
		MaxTestCases: opsMax(req.MaxTestCases, validate.DefaultMaxGUITestCases),
	})
	if err != nil {
		return nil, err
	}

	cases, usedFallback := guiCandidates(ctx, client, p, req, opts, log)

	taken := testcase.NewIDSet()
	for _, c := range cases {
		taken.Add(c.ID)
	}
	edge := edgecase.GUI(req.Page, req.EdgeCases, taken)
	cases = append(cases, edge...)

	testcase.Prioritize(cases)
	score := quality.AnalyzeGUI(cases)
	log.Info("gui suite generated",
		"cases", len(cases), "edgeCases", len(edge),
		"overall", score.Overall, "fallback", usedFallback)

	return &GUIResult{Cases: cases, Quality: score, UsedFallback: usedFallback}, nil
}

func guiCandidates(ctx context.Context, client llm.Client, p string, req Request, opts validate.Options, log *slog.Logger) ([]testcase.TestCase, bool) {
	raw, err := client.GenerateJSON(ctx, p)
	if err != nil {
		log.Warn("llm unavailable, using fallback suite", "error", err)
		return validate.FallbackGUI(req.Page, opts), true
	}
	items, ok := validate.Batch(raw)
	if !ok {
		log.Warn("llm response is not a test-case array, using fallback suite")
		return validate.FallbackGUI(req.Page, opts), true
	}
	cases := validate.GUI(items, opts, testcase.NewIDSet())
	if len(cases) == 0 {
		log.Warn("no llm candidates survived validation, using fallback suite")
		return validate.FallbackGUI(req.Page, opts), true
	}
	return cases, false
}

// APISuite runs the full API pipeline, mirroring GUISuite.
func APISuite(ctx context.Context, client llm.Client, req Request) (*APIResult, error) {
	log := logging.New("generate")
	opts := validate.Options{AppURL: req.AppURL, MaxTestCases: req.MaxTestCases}

	p, err := prompt.API(prompt.Params{
		AppURL:       req.AppURL,
		Endpoints:    req.Endpoints,
		UserJourneys: req.UserJourneys,
		MaxTestCases: opsMax(req.MaxTestCases, validate.DefaultMaxAPITestCases),
	})
	if err != nil {
		return nil, err
	}

	cases, usedFallback := apiCandidates(ctx, client, p, req, opts, log)

	taken := testcase.NewIDSet()
	for _, c := range cases {
		taken.Add(c.ID)
	}
	edge := edgecase.API(req.Endpoints, req.EdgeCases, taken)
	cases = append(cases, edge...)

	testcase.PrioritizeAPI(cases)
	score := quality.AnalyzeAPI(cases)
	log.Info("api suite generated",
		"cases", len(cases), "edgeCases", len(edge),
		"overall", score.Overall, "fallback", usedFallback)

	return &APIResult{Cases: cases, Quality: score, UsedFallback: usedFallback}, nil
}

func apiCandidates(ctx context.Context, client llm.Client, p string, req Request, opts validate.Options, log *slog.Logger) ([]testcase.APITestCase, bool) {
	raw, err := client.GenerateJSON(ctx, p)
	if err != nil {
		log.Warn("llm unavailable, using fallback suite", "error", err)
		return validate.FallbackAPI(req.Endpoints, opts), true
	}
	items, ok := validate.Batch(raw)
	if !ok {
		log.Warn("llm response is not a test-case array, using fallback suite")
		return validate.FallbackAPI(req.Endpoints, opts), true
	}
	cases := validate.API(items, opts, testcase.NewIDSet())
	if len(cases) == 0 {
		log.Warn("no llm candidates survived validation, using fallback suite")
		return validate.FallbackAPI(req.Endpoints, opts), true
	}
	return cases, false
}

// Coverage computes the cross-cutting coverage report for a finished run.
func Coverage(gui *GUIResult, api *APIResult) quality.Coverage {
	var guiCases []testcase.TestCase
	var apiCases []testcase.APITestCase
	if gui != nil {
		guiCases = gui.Cases
	}
	if api != nil {
		apiCases = api.Cases
	}
	return quality.CoverageGaps(guiCases, apiCases)
}

func opsMax(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
