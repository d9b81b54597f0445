package quality

import (
	"fmt"
	"strings"

	"webforge/internal/testcase"
)

// apiEssentialMethods must each appear in a healthy API suite.
var apiEssentialMethods = []string{"GET", "POST"}

// AnalyzeAPI scores an API collection. Pure: cases are read, never changed.
func AnalyzeAPI(cases []testcase.APITestCase) Score {
	s := newScorer()

	for i := range cases {
		analyzeAPICase(s, &cases[i])
	}
	scoreAPICoverage(s, cases)
	scoreAPIPerformance(s, cases)

	return s.finish()
}

func analyzeAPICase(s *scorer, tc *testcase.APITestCase) {
	// --- completeness ---
	hasStatus, hasBody, hasPerf := false, false, false
	for _, a := range tc.Assertions {
		switch a.Type {
		case testcase.APIAssertStatus:
			hasStatus = true
		case testcase.APIAssertBody, testcase.APIAssertSchema:
			hasBody = true
		case testcase.APIAssertPerformance:
			hasPerf = true
		}
	}
	if !hasStatus {
		s.completeness -= 15
		s.issue(SeverityHigh, "completeness", tc.ID,
			"no status assertion",
			"Assert the response status; it is the cheapest correctness signal")
	}
	if (tc.Method == "POST" || tc.Method == "PUT") && !hasBody {
		s.completeness -= 5
		s.issue(SeverityMedium, "completeness", tc.ID,
			"write request without a body or schema assertion",
			"Assert on the response body so silent data corruption is caught")
	}
	if len(tc.Description) < 10 {
		s.completeness -= 5
		s.issue(SeverityLow, "completeness", tc.ID,
			"description is missing or too short",
			"Describe what the test verifies in at least one sentence")
	}

	// --- maintainability ---
	if strings.HasPrefix(tc.Endpoint, "http://") || strings.HasPrefix(tc.Endpoint, "https://") {
		s.maintainability -= 10
		s.issue(SeverityMedium, "maintainability", tc.ID,
			"endpoint hardcodes a host",
			"Use a relative path; the runner supplies the base URL")
	}
	for k, v := range tc.Headers {
		if strings.EqualFold(k, "Authorization") && strings.HasPrefix(v, "Bearer ") && len(v) > len("Bearer ") {
			s.maintainability -= 10
			s.issue(SeverityMedium, "maintainability", tc.ID,
				"hardcoded bearer token in headers",
				"Reference credentials via variables, never literals")
			break
		}
	}
	if len(tc.Tags) < 2 {
		s.maintainability -= 2
		s.issue(SeverityLow, "maintainability", tc.ID,
			"fewer than two tags",
			"Tag tests by resource and kind so suites can be filtered")
	}

	// --- reliability ---
	if len(tc.Dependencies) > 0 && len(tc.DataSetup) == 0 {
		s.reliability -= 5
		s.issue(SeverityMedium, "reliability", tc.ID,
			"declares dependencies but no dataSetup",
			"Add dataSetup so the test provisions its own prerequisites")
	}
	if tc.Timeout > 30000 && !hasPerf {
		s.reliability -= 2
		s.issue(SeverityLow, "reliability", tc.ID,
			fmt.Sprintf("timeout %dms without a performance assertion", tc.Timeout),
			"Pair long timeouts with a latency assertion or tighten them")
	}
}

func scoreAPICoverage(s *scorer, cases []testcase.APITestCase) {
	methods := map[string]bool{}
	errorExpectations := 0
	for i := range cases {
		methods[cases[i].Method] = true
		if cases[i].ExpectedStatus >= 400 {
			errorExpectations++
		}
	}

	s.coverage = 15 * len(methods)
	for _, essential := range apiEssentialMethods {
		if !methods[essential] {
			s.coverage -= 10
			s.issue(SeverityMedium, "coverage", "",
				fmt.Sprintf("no %s requests in the suite", essential),
				fmt.Sprintf("Exercise %s endpoints; they carry distinct failure modes", essential))
			s.suggest("method-"+essential,
				fmt.Sprintf("Cover %s endpoints", essential))
		}
	}
	if len(cases) > 0 && errorExpectations == 0 {
		s.coverage -= 15
		s.issue(SeverityMedium, "coverage", "",
			"no tests expect an error status",
			"Add negative tests expecting 4xx/5xx responses")
		s.suggest("no-error-status", "Add negative tests for error status codes")
	}
}

func scoreAPIPerformance(s *scorer, cases []testcase.APITestCase) {
	perfTests := 0
	for i := range cases {
		if cases[i].Category == "performance" || hasTag(cases[i].Tags, "performance") {
			perfTests++
			continue
		}
		for _, a := range cases[i].Assertions {
			if a.Type == testcase.APIAssertPerformance {
				perfTests++
				break
			}
		}
	}
	if perfTests == 0 && len(cases) > 5 {
		s.performance -= 10
		s.issue(SeverityLow, "performance", "",
			"suite has no performance tests or assertions",
			"Add latency assertions on the hottest endpoints")
		s.suggest("no-performance", "Add latency assertions for hot endpoints")
	}
}
