// Package quality scores finished test collections along five independent
// categories and reports itemized issues with remediation suggestions. All
// analysis is pure: input collections are never mutated, and no input shape
// can produce an error — a degraded suite gets a low score, not an
// exception.
package quality

import (
	"math"
	"sort"
)

// Severity of one reported issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// Issue is one itemized finding against a test case or the whole suite
// (empty TestID).
type Issue struct {
	Severity   Severity `json:"severity"`
	Category   string   `json:"category"`
	TestID     string   `json:"testId,omitempty"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Categories holds the five independent category scores.
type Categories struct {
	Completeness    int `json:"completeness"`
	Maintainability int `json:"maintainability"`
	Reliability     int `json:"reliability"`
	Coverage        int `json:"coverage"`
	Performance     int `json:"performance"`
}

// Score is the quality report for one collection.
type Score struct {
	Overall     int        `json:"overall"`
	Categories  Categories `json:"categories"`
	Issues      []Issue    `json:"issues"`
	Suggestions []string   `json:"suggestions"`
}

// Coverage holds cross-cutting percentages over the combined GUI+API
// collection. Accessibility is GUI-only.
type Coverage struct {
	FunctionalCoverage    int `json:"functionalCoverage"`
	ErrorCoverage         int `json:"errorCoverage"`
	EdgeCaseCoverage      int `json:"edgeCaseCoverage"`
	SecurityCoverage      int `json:"securityCoverage"`
	PerformanceCoverage   int `json:"performanceCoverage"`
	AccessibilityCoverage int `json:"accessibilityCoverage"`
}

// scorer accumulates penalties and findings during one analysis pass.
// Every category starts at 100 and only subtracts; coverage is recomputed
// from a count-derived base.
type scorer struct {
	completeness    int
	maintainability int
	reliability     int
	coverage        int
	performance     int

	issues      []Issue
	suggestions []string
	suggested   map[string]bool
}

func newScorer() *scorer {
	return &scorer{
		completeness:    100,
		maintainability: 100,
		reliability:     100,
		performance:     100,
		suggested:       map[string]bool{},
	}
}

func (s *scorer) issue(sev Severity, category, testID, message, suggestion string) {
	s.issues = append(s.issues, Issue{
		Severity: sev, Category: category, TestID: testID,
		Message: message, Suggestion: suggestion,
	})
}

// suggest records a suite-level suggestion once per rule key, in
// generation order.
func (s *scorer) suggest(key, text string) {
	if s.suggested[key] {
		return
	}
	s.suggested[key] = true
	s.suggestions = append(s.suggestions, text)
}

// finish clamps, sorts issues, and assembles the Score.
func (s *scorer) finish() Score {
	cats := Categories{
		Completeness:    clampFloor(s.completeness),
		Maintainability: clampFloor(s.maintainability),
		Reliability:     clampFloor(s.reliability),
		Coverage:        clamp(s.coverage),
		Performance:     clampFloor(s.performance),
	}
	overall := (cats.Completeness + cats.Maintainability + cats.Reliability +
		cats.Coverage + cats.Performance) / 5

	issues := make([]Issue, len(s.issues))
	copy(issues, s.issues)
	sort.SliceStable(issues, func(i, j int) bool {
		ri, rj := severityRank[issues[i].Severity], severityRank[issues[j].Severity]
		if ri != rj {
			return ri < rj
		}
		return issues[i].Category < issues[j].Category
	})

	return Score{
		Overall:     overall,
		Categories:  cats,
		Issues:      issues,
		Suggestions: s.suggestions,
	}
}

func clampFloor(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// percent is round(100*n/total); 0 on an empty collection by definition.
func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(total)))
}

// hasTag reports whether tags contains want.
func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
