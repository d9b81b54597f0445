package validate

import (
	"webforge/internal/discover"
	"webforge/internal/testcase"
)

// FallbackGUI builds the deterministic minimal smoke suite used when the
// LLM returns nothing usable. It is built from structural facts only, so a
// degraded run still produces a runnable collection.
func FallbackGUI(page *discover.PageInfo, opts Options) []testcase.TestCase {
	title := "application"
	if page != nil && page.Title != "" {
		title = page.Title
	}
	tc := testcase.TestCase{
		ID:          "smoke-page-load",
		Name:        "Page loads successfully",
		Description: "Smoke test: the application page loads and renders visible content",
		Category:    "smoke",
		Priority:    testcase.PriorityCritical,
		Tags:        []string{"smoke", "fallback"},
		Steps: []testcase.Step{{
			Action:      testcase.ActionGoto,
			Value:       opts.AppURL,
			WaitFor:     "load",
			Description: "Navigate to " + title,
			Options:     testcase.StepOptions{Timeout: testcase.DefaultStepTimeout},
		}},
		Assertions: []testcase.Assertion{{
			Type:     testcase.AssertVisible,
			Selector: "body",
			Operator: "exists",
			Timeout:  testcase.DefaultAssertionTimeout,
			Retry:    true,
		}},
	}
	if page != nil && page.Title != "" {
		tc.Assertions = append(tc.Assertions, testcase.Assertion{
			Type:     testcase.AssertText,
			Selector: "title",
			Expected: page.Title,
			Operator: "contains",
			Timeout:  testcase.DefaultAssertionTimeout,
			Retry:    true,
		})
	}
	return []testcase.TestCase{tc}
}

// FallbackAPI builds the deterministic minimal API smoke suite: one GET
// against the first discovered endpoint, or the root path when discovery
// found nothing.
func FallbackAPI(endpoints []discover.Endpoint, opts Options) []testcase.APITestCase {
	endpoint := "/"
	if len(endpoints) > 0 {
		endpoint = discover.NormalizeEndpoint(endpoints[0].URL)
	}
	return []testcase.APITestCase{{
		ID:             "smoke-api-reachable",
		Name:           "API endpoint is reachable",
		Description:    "Smoke test: the API answers the first discovered endpoint",
		Category:       "smoke",
		Priority:       testcase.PriorityCritical,
		Tags:           []string{"smoke", "fallback"},
		Method:         "GET",
		Endpoint:       endpoint,
		ExpectedStatus: 200,
		Assertions: []testcase.APIAssertion{{
			Type:     testcase.APIAssertStatus,
			Expected: 200,
			Operator: "equals",
		}},
	}}
}
