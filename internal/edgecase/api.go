package edgecase

import (
	"fmt"
	"strings"

	"webforge/internal/discover"
	"webforge/internal/testcase"
)

// sqlInjectionPayload is destructive on purpose: a vulnerable server would
// error or leak structure; the assertions check neither happens.
const sqlInjectionPayload = `'; DROP TABLE users; --`

// API synthesizes edge cases from discovered endpoints. Rule order is
// fixed (boundary, security, validation, performance) because truncation
// happens in synthesis order. An empty endpoint list produces zero cases.
func API(endpoints []discover.Endpoint, cfg Config, taken testcase.IDSet) []testcase.APITestCase {
	if taken == nil {
		taken = testcase.NewIDSet()
	}
	s := &apiSynth{endpoints: dedupeEndpoints(endpoints), cfg: cfg, taken: taken}

	if cfg.Boundary {
		s.boundaryCases()
	}
	if cfg.Security {
		s.securityCases()
	}
	if cfg.DataValidation {
		s.validationCases()
	}
	if cfg.PerformanceEdge {
		s.performanceCases()
	}
	return truncate(s.out, cfg.maxCases())
}

type apiSynth struct {
	endpoints []discover.Endpoint
	cfg       Config
	taken     testcase.IDSet
	out       []testcase.APITestCase
}

func (s *apiSynth) add(tc testcase.APITestCase) {
	tc.ID = testcase.EnsureUniqueID(tc.ID, s.taken)
	s.taken.Add(tc.ID)
	s.out = append(s.out, tc)
}

// dedupeEndpoints keeps the first occurrence of each (method, path) pair.
func dedupeEndpoints(endpoints []discover.Endpoint) []discover.Endpoint {
	seen := make(map[string]bool, len(endpoints))
	var out []discover.Endpoint
	for _, ep := range endpoints {
		key := strings.ToUpper(ep.Method) + " " + discover.NormalizeEndpoint(ep.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ep)
	}
	return out
}

func isWrite(method string) bool {
	switch method {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

func statusAssertion(code int) testcase.APIAssertion {
	return testcase.APIAssertion{
		Type:     testcase.APIAssertStatus,
		Expected: code,
		Operator: "equals",
	}
}

// boundaryCases covers the long-URL and oversized-payload probes.
func (s *apiSynth) boundaryCases() {
	for i, ep := range s.endpoints {
		method := strings.ToUpper(ep.Method)
		path := discover.NormalizeEndpoint(ep.URL)

		if method == "GET" {
			s.add(testcase.APITestCase{
				ID:             fmt.Sprintf("edge-long-url-%d", i+1),
				Name:           fmt.Sprintf("Oversized query parameter on %s", path),
				Description:    "Send a GET with an oversized query parameter and expect the server to reject the URL",
				Category:       "error",
				Priority:       testcase.PriorityMedium,
				Tags:           []string{"edge-case", "boundary", "url"},
				Method:         "GET",
				Endpoint:       path,
				QueryParams:    map[string]string{"q": strings.Repeat("x", 4096)},
				ExpectedStatus: 414,
				Assertions:     []testcase.APIAssertion{statusAssertion(414)},
			})
		}

		if isWrite(method) {
			s.add(testcase.APITestCase{
				ID:             fmt.Sprintf("edge-oversized-payload-%d", i+1),
				Name:           fmt.Sprintf("Oversized body on %s %s", method, path),
				Description:    "Send a very large request body and expect the server to refuse the payload",
				Category:       "error",
				Priority:       testcase.PriorityMedium,
				Tags:           []string{"edge-case", "boundary", "payload"},
				Method:         method,
				Endpoint:       path,
				Headers:        map[string]string{"Content-Type": "application/json"},
				Body:           map[string]any{"data": strings.Repeat("A", 1<<20)},
				ExpectedStatus: 413,
				Assertions:     []testcase.APIAssertion{statusAssertion(413)},
			})
		}
	}
}

// securityCases covers the SQL-injection probe.
func (s *apiSynth) securityCases() {
	for i, ep := range s.endpoints {
		method := strings.ToUpper(ep.Method)
		path := discover.NormalizeEndpoint(ep.URL)

		// Security assertions are inverted by the runner: the response body
		// must NOT contain the leaked strings.
		tc := testcase.APITestCase{
			ID:          fmt.Sprintf("edge-sql-injection-%d", i+1),
			Name:        fmt.Sprintf("SQL injection rejected on %s %s", method, path),
			Description: "Inject a destructive SQL payload and expect no data or structure leakage in the response",
			Category:    "security",
			Priority:    testcase.PriorityCritical,
			Tags:        []string{"edge-case", "security", "sql-injection"},
			Method:      method,
			Endpoint:    path,
			Assertions: []testcase.APIAssertion{
				{Type: testcase.APIAssertSecurity, Target: "body", Expected: "SQL", Operator: "contains"},
				{Type: testcase.APIAssertSecurity, Target: "body", Expected: "syntax error", Operator: "contains"},
			},
		}
		if isWrite(method) {
			tc.Headers = map[string]string{"Content-Type": "application/json"}
			tc.Body = map[string]any{"name": sqlInjectionPayload}
		} else {
			tc.Method = "GET"
			tc.QueryParams = map[string]string{"filter": sqlInjectionPayload}
		}
		// The payload is legal input to a safe server, so the probe expects
		// the method's normal success status.
		tc.ExpectedStatus = testcase.DefaultStatusFor(tc.Method)
		tc.Assertions = append([]testcase.APIAssertion{statusAssertion(tc.ExpectedStatus)}, tc.Assertions...)
		s.add(tc)
	}
}

// validationCases covers malformed JSON, empty body, and missing
// content-type probes on write endpoints.
func (s *apiSynth) validationCases() {
	for i, ep := range s.endpoints {
		method := strings.ToUpper(ep.Method)
		if !isWrite(method) {
			continue
		}
		path := discover.NormalizeEndpoint(ep.URL)

		s.add(testcase.APITestCase{
			ID:             fmt.Sprintf("edge-malformed-json-%d", i+1),
			Name:           fmt.Sprintf("Malformed JSON body on %s %s", method, path),
			Description:    "Send a syntactically broken JSON body and expect a 400 naming the parse problem",
			Category:       "validation",
			Priority:       testcase.PriorityHigh,
			Tags:           []string{"edge-case", "validation", "json"},
			Method:         method,
			Endpoint:       path,
			Headers:        map[string]string{"Content-Type": "application/json"},
			Body:           `{"broken": json,}`,
			ExpectedStatus: 400,
			Assertions: []testcase.APIAssertion{
				statusAssertion(400),
				{Type: testcase.APIAssertBody, Target: "body", Expected: "JSON", Operator: "contains"},
			},
		})

		s.add(testcase.APITestCase{
			ID:             fmt.Sprintf("edge-empty-body-%d", i+1),
			Name:           fmt.Sprintf("Empty body on %s %s", method, path),
			Description:    "Send a write request with no body and expect a validation error",
			Category:       "validation",
			Priority:       testcase.PriorityHigh,
			Tags:           []string{"edge-case", "validation", "empty-body"},
			Method:         method,
			Endpoint:       path,
			Headers:        map[string]string{"Content-Type": "application/json"},
			ExpectedStatus: 400,
			Assertions:     []testcase.APIAssertion{statusAssertion(400)},
		})

		s.add(testcase.APITestCase{
			ID:             fmt.Sprintf("edge-missing-content-type-%d", i+1),
			Name:           fmt.Sprintf("Missing content type on %s %s", method, path),
			Description:    "Send a JSON body without a Content-Type header and expect the server to refuse or default safely",
			Category:       "validation",
			Priority:       testcase.PriorityMedium,
			Tags:           []string{"edge-case", "validation", "content-type"},
			Method:         method,
			Endpoint:       path,
			Body:           map[string]any{"probe": true},
			ExpectedStatus: 415,
			Assertions:     []testcase.APIAssertion{statusAssertion(415)},
		})
	}
}

// performanceCases covers the concurrent-burst probe.
func (s *apiSynth) performanceCases() {
	for i, ep := range s.endpoints {
		method := strings.ToUpper(ep.Method)
		if method != "GET" {
			continue
		}
		path := discover.NormalizeEndpoint(ep.URL)
		s.add(testcase.APITestCase{
			ID:             fmt.Sprintf("edge-burst-%d", i+1),
			Name:           fmt.Sprintf("Response under burst on %s", path),
			Description:    "Issue the request repeatedly and expect responses within the latency budget",
			Category:       "performance",
			Priority:       testcase.PriorityLow,
			Tags:           []string{"edge-case", "performance", "burst"},
			Method:         "GET",
			Endpoint:       path,
			Timeout:        30000,
			ExpectedStatus: 200,
			Assertions: []testcase.APIAssertion{
				statusAssertion(200),
				{Type: testcase.APIAssertPerformance, Target: "responseTime", Expected: 2000, Operator: "less"},
			},
		})
		break // one burst probe per suite
	}
}
