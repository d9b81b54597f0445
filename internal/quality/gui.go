package quality

import (
	"fmt"
	"regexp"

	"webforge/internal/testcase"
)

// brittleSelector matches positional selectors that break on any DOM
// reordering.
var brittleSelector = regexp.MustCompile(`nth-child|nth-of-type|\[\d+\]|:eq\(`)

// guiEssentialCategories must each appear in a healthy GUI suite.
var guiEssentialCategories = []string{"form", "navigation", "error"}

// AnalyzeGUI scores a GUI collection. Pure: cases are read, never changed.
func AnalyzeGUI(cases []testcase.TestCase) Score {
	s := newScorer()

	for i := range cases {
		analyzeGUICase(s, &cases[i])
	}
	scoreGUICoverage(s, cases)
	scoreGUIPerformance(s, cases)

	return s.finish()
}

func analyzeGUICase(s *scorer, tc *testcase.TestCase) {
	// --- completeness ---
	if len(tc.Description) < 10 {
		s.completeness -= 5
		s.issue(SeverityLow, "completeness", tc.ID,
			"description is missing or too short",
			"Describe what the test verifies in at least one sentence")
	}
	if len(tc.Assertions) == 0 {
		s.completeness -= 15
		s.issue(SeverityHigh, "completeness", tc.ID,
			"test has no assertions",
			"Add at least one assertion; a test without assertions can never fail")
		s.suggest("no-assertions", "Add assertions to every test case so failures are detectable")
	}
	usesFill := false
	for _, st := range tc.Steps {
		if st.Action == testcase.ActionFill {
			usesFill = true
			break
		}
	}
	if usesFill && (tc.TestData == nil || len(tc.TestData.Inputs) == 0) {
		s.completeness -= 5
		s.issue(SeverityMedium, "completeness", tc.ID,
			"fill steps without testData.inputs",
			"Move input values into testData.inputs so data and flow stay separable")
	}
	if tc.Category == "authentication" && len(tc.Cleanup) == 0 {
		s.completeness -= 3
		s.issue(SeverityLow, "completeness", tc.ID,
			"authentication test without cleanup steps",
			"Add cleanup steps to log out and reset session state")
	}

	// --- maintainability ---
	for _, st := range tc.Steps {
		if st.Selector != "" && brittleSelector.MatchString(st.Selector) {
			s.maintainability -= 10
			s.issue(SeverityMedium, "maintainability", tc.ID,
				fmt.Sprintf("brittle positional selector %q", st.Selector),
				"Prefer ids, data-testid attributes or text-based selectors")
			break
		}
	}
	bareWaits := 0
	for _, st := range tc.Steps {
		if st.Action == testcase.ActionWait && st.Selector == "" && st.Options.Timeout > 0 {
			bareWaits++
		}
	}
	if bareWaits > 2 {
		s.maintainability -= 5
		s.issue(SeverityMedium, "maintainability", tc.ID,
			fmt.Sprintf("%d timing-based waits without a selector", bareWaits),
			"Wait on element state instead of fixed timeouts")
	}
	if len(tc.Tags) < 2 {
		s.maintainability -= 2
		s.issue(SeverityLow, "maintainability", tc.ID,
			"fewer than two tags",
			"Tag tests by feature and kind so suites can be filtered")
	}

	// --- reliability ---
	interactive, withoutRetry := 0, 0
	for _, st := range tc.Steps {
		switch st.Action {
		case testcase.ActionClick, testcase.ActionFill, testcase.ActionSelect:
			interactive++
			if !st.Retry {
				withoutRetry++
			}
		}
	}
	if interactive > 0 && withoutRetry*2 > interactive {
		s.reliability -= 5
		s.issue(SeverityMedium, "reliability", tc.ID,
			"most interactive steps lack retry",
			"Enable retry on click/fill/select steps to absorb rendering races")
	}
	for _, st := range tc.Steps {
		if (st.Action == testcase.ActionClick || st.Action == testcase.ActionGoto) && st.WaitFor == "" {
			s.reliability -= 3
			s.issue(SeverityLow, "reliability", tc.ID,
				"click/goto step without a waitFor condition",
				"Add waitFor so the step runs against a settled page")
			break
		}
	}
	for _, st := range tc.Steps {
		if st.Options.Timeout > 30000 {
			s.reliability -= 2
			s.issue(SeverityLow, "reliability", tc.ID,
				fmt.Sprintf("step timeout %dms exceeds 30s", st.Options.Timeout),
				"Long timeouts hide real slowness; keep steps under 30s")
			break
		}
	}
}

func scoreGUICoverage(s *scorer, cases []testcase.TestCase) {
	categories := map[string]bool{}
	critical, high := 0, 0
	for i := range cases {
		categories[cases[i].Category] = true
		switch cases[i].Priority {
		case testcase.PriorityCritical:
			critical++
		case testcase.PriorityHigh:
			high++
		}
	}

	s.coverage = 15 * len(categories)
	for _, essential := range guiEssentialCategories {
		if !categories[essential] {
			s.coverage -= 10
			s.issue(SeverityMedium, "coverage", "",
				fmt.Sprintf("no %s tests in the suite", essential),
				fmt.Sprintf("Add %s tests; they catch a distinct failure class", essential))
			s.suggest("essential-"+essential,
				fmt.Sprintf("Cover the %s category", essential))
		}
	}
	if len(cases) > 0 && critical == 0 && high*10 < len(cases)*3 {
		s.coverage -= 15
		s.issue(SeverityMedium, "coverage", "",
			"no critical-priority tests and under 30% high priority",
			"Promote the most business-critical flows to critical priority")
	}
}

func scoreGUIPerformance(s *scorer, cases []testcase.TestCase) {
	perfTests, screenshots := 0, 0
	for i := range cases {
		if cases[i].Category == "performance" || hasTag(cases[i].Tags, "performance") {
			perfTests++
		}
		for _, st := range cases[i].Steps {
			if st.Action == testcase.ActionScreenshot {
				screenshots++
			}
		}
	}
	if perfTests == 0 && len(cases) > 5 {
		s.performance -= 10
		s.issue(SeverityLow, "performance", "",
			"suite has no performance tests",
			"Add at least one performance-focused test for key pages")
		s.suggest("no-performance", "Add performance probes for the slowest pages")
	}
	if screenshots > 2*len(cases) {
		s.performance -= 5
		s.issue(SeverityLow, "performance", "",
			fmt.Sprintf("%d screenshot steps across %d tests", screenshots, len(cases)),
			"Screenshots slow runs; keep them to failures and key checkpoints")
	}
}
