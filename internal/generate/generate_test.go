package generate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"webforge/internal/discover"
	"webforge/internal/edgecase"
	"webforge/internal/llm"
	"webforge/internal/testcase"
)

func testRequest() Request {
	return Request{
		AppURL: "https://shop.test",
		Page: &discover.PageInfo{
			Title: "Shop",
			URL:   "https://shop.test",
			Forms: []discover.Form{{
				Selector: "#signup",
				Inputs:   []discover.Input{{Selector: "#email", Type: "email", Required: true}},
			}},
			Inputs: []discover.Input{{Selector: "#email", Type: "email", Required: true}},
			Links:  []discover.Link{{Selector: "a", Href: "/about"}},
		},
		Endpoints: []discover.Endpoint{
			{Method: "GET", URL: "/api/products", Status: 200},
			{Method: "POST", URL: "/api/orders", Status: 201},
		},
		EdgeCases: edgecase.DefaultConfig(),
	}
}

func llmSuite() json.RawMessage {
	return json.RawMessage(`[
		{"id":"t-login","name":"Login works","priority":"critical","category":"authentication",
		 "steps":[{"action":"goto","value":"https://shop.test"},{"action":"fill","selector":"#email","value":"a@b.c"}],
		 "assertions":[{"type":"url","expected":"/dashboard","operator":"contains"}]},
		{"id":"t-nav","name":"Navigation","priority":"low","category":"navigation",
		 "steps":[{"action":"click","selector":"#menu"}],
		 "assertions":[{"type":"visible","selector":"#nav"}]}
	]`)
}

func TestGUISuite_HappyPath(t *testing.T) {
	stub := &llm.Stub{Responses: []json.RawMessage{llmSuite()}}
	res, err := GUISuite(context.Background(), stub, testRequest())
	if err != nil {
		t.Fatalf("GUISuite: %v", err)
	}
	if res.UsedFallback {
		t.Error("fallback used although the stub returned a valid batch")
	}
	if len(res.Cases) <= 2 {
		t.Fatalf("suite has %d cases, want llm cases plus edge cases", len(res.Cases))
	}

	// Prioritized: the critical authentication case leads.
	if res.Cases[0].ID != "t-login" && res.Cases[0].Priority != testcase.PriorityCritical {
		t.Errorf("first case = %s (%s), want a critical case first", res.Cases[0].ID, res.Cases[0].Priority)
	}

	// ID uniqueness across llm + edge cases.
	seen := map[string]bool{}
	for _, c := range res.Cases {
		if seen[c.ID] {
			t.Errorf("duplicate id %q in final suite", c.ID)
		}
		seen[c.ID] = true
	}

	if res.Quality.Overall < 0 || res.Quality.Overall > 100 {
		t.Errorf("overall score %d out of bounds", res.Quality.Overall)
	}
}

func TestGUISuite_MalformedLLMResponse(t *testing.T) {
	stub := &llm.Stub{Responses: []json.RawMessage{json.RawMessage(`{"not":"an array"}`)}}
	req := testRequest()
	req.EdgeCases = edgecase.Config{} // isolate the fallback path
	res, err := GUISuite(context.Background(), stub, req)
	if err != nil {
		t.Fatalf("GUISuite must not fail on malformed output: %v", err)
	}
	if !res.UsedFallback {
		t.Error("fallback not used for non-array response")
	}
	if len(res.Cases) != 1 || res.Cases[0].ID != "smoke-page-load" {
		t.Errorf("fallback suite = %+v, want the single smoke case", res.Cases)
	}
}

func TestGUISuite_LLMError(t *testing.T) {
	stub := &llm.Stub{Err: errors.New("provider down")}
	res, err := GUISuite(context.Background(), stub, testRequest())
	if err != nil {
		t.Fatalf("GUISuite must not fail when the llm is down: %v", err)
	}
	if !res.UsedFallback {
		t.Error("fallback not used when llm errored")
	}
	if len(res.Cases) == 0 {
		t.Error("llm outage produced an empty suite; fallback plus edge cases expected")
	}
}

func TestAPISuite_HappyPath(t *testing.T) {
	stub := &llm.Stub{Responses: []json.RawMessage{json.RawMessage(`[
		{"id":"a-list","name":"List products","method":"GET","endpoint":"/api/products",
		 "category":"crud","priority":"high"}
	]`)}}
	res, err := APISuite(context.Background(), stub, testRequest())
	if err != nil {
		t.Fatalf("APISuite: %v", err)
	}
	if res.UsedFallback {
		t.Error("fallback used although the stub returned a valid batch")
	}
	var llmCase *testcase.APITestCase
	for i := range res.Cases {
		if res.Cases[i].ID == "a-list" {
			llmCase = &res.Cases[i]
		}
	}
	if llmCase == nil {
		t.Fatal("validated llm case missing from final suite")
	}
	if len(llmCase.Assertions) == 0 || llmCase.Assertions[0].Type != testcase.APIAssertStatus {
		t.Errorf("status assertion not prepended: %+v", llmCase.Assertions)
	}
}

func TestAPISuite_FallbackOnEmptyValidation(t *testing.T) {
	// Every element is missing required fields, so validation accepts none.
	stub := &llm.Stub{Responses: []json.RawMessage{json.RawMessage(`[{"name":"no id"}]`)}}
	req := testRequest()
	req.EdgeCases = edgecase.Config{}
	res, err := APISuite(context.Background(), stub, req)
	if err != nil {
		t.Fatalf("APISuite: %v", err)
	}
	if !res.UsedFallback {
		t.Error("fallback not used when validation rejected every candidate")
	}
}

func TestCoverage_NilResults(t *testing.T) {
	cov := Coverage(nil, nil)
	if cov.FunctionalCoverage != 0 || cov.ErrorCoverage != 0 {
		t.Errorf("nil results coverage = %+v, want zeros", cov)
	}
}
