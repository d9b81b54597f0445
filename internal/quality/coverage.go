package quality

import "webforge/internal/testcase"

// CoverageGaps computes cross-cutting coverage percentages over the
// combined GUI+API collection. Accessibility is GUI-only (API tests cannot
// exercise it). An empty collection yields all zeros, never an error.
func CoverageGaps(gui []testcase.TestCase, api []testcase.APITestCase) Coverage {
	total := len(gui) + len(api)

	var functional, errorCases, edge, security, performance, accessibility int

	for i := range gui {
		c := &gui[i]
		if matchesGUI(c, "functional", "smoke", "interaction") {
			functional++
		}
		if matchesGUI(c, "error", "validation") {
			errorCases++
		}
		if hasTag(c.Tags, "edge-case") || matchesGUI(c, "boundary") {
			edge++
		}
		if matchesGUI(c, "security") {
			security++
		}
		if matchesGUI(c, "performance") {
			performance++
		}
		if matchesGUI(c, "accessibility") {
			accessibility++
		}
	}
	for i := range api {
		c := &api[i]
		if matchesAPI(c, "functional", "crud", "smoke") {
			functional++
		}
		if matchesAPI(c, "error", "validation") || c.ExpectedStatus >= 400 {
			errorCases++
		}
		if hasTag(c.Tags, "edge-case") || matchesAPI(c, "boundary") {
			edge++
		}
		if matchesAPI(c, "security") {
			security++
		}
		if matchesAPI(c, "performance") {
			performance++
		}
	}

	return Coverage{
		FunctionalCoverage:    percent(functional, total),
		ErrorCoverage:         percent(errorCases, total),
		EdgeCaseCoverage:      percent(edge, total),
		SecurityCoverage:      percent(security, total),
		PerformanceCoverage:   percent(performance, total),
		AccessibilityCoverage: percent(accessibility, len(gui)),
	}
}

func matchesGUI(c *testcase.TestCase, names ...string) bool {
	for _, n := range names {
		if c.Category == n || hasTag(c.Tags, n) {
			return true
		}
	}
	return false
}

func matchesAPI(c *testcase.APITestCase, names ...string) bool {
	for _, n := range names {
		if c.Category == n || hasTag(c.Tags, n) {
			return true
		}
	}
	return false
}
