// Package report renders generated suites and quality analysis for the CLI.
package report

import (
	"fmt"
	"strings"

	"webforge/internal/format"
	"webforge/internal/quality"
	"webforge/internal/testcase"
)

// GUISuite renders a summary table of GUI test cases.
func GUISuite(cases []testcase.TestCase, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Title(fmt.Sprintf("GUI Suite (%d cases)", len(cases)))
	tb.Header("ID", "Priority", "Category", "Steps", "Assertions", "Name")
	tb.Columns(
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, MaxWidth: 40},
	)
	for _, c := range cases {
		tb.Row(c.ID, string(c.Priority), c.Category, len(c.Steps), len(c.Assertions), c.Name)
	}
	return tb.String()
}

// APISuite renders a summary table of API test cases.
func APISuite(cases []testcase.APITestCase, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Title(fmt.Sprintf("API Suite (%d cases)", len(cases)))
	tb.Header("ID", "Priority", "Method", "Endpoint", "Status", "Assertions")
	tb.Columns(
		format.ColumnConfig{Number: 4, MaxWidth: 40},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
	)
	for _, c := range cases {
		tb.Row(c.ID, string(c.Priority), c.Method, c.Endpoint, c.ExpectedStatus, len(c.Assertions))
	}
	return tb.String()
}

// Quality renders a score report: category table, then issues, then
// suggestions. Empty sections are omitted.
func Quality(title string, score quality.Score, mode format.Mode) string {
	var b strings.Builder

	tb := format.NewTable(mode)
	tb.Title(title)
	tb.Header("Category", "Score")
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	tb.Row("Completeness", format.FmtScore(score.Categories.Completeness))
	tb.Row("Maintainability", format.FmtScore(score.Categories.Maintainability))
	tb.Row("Reliability", format.FmtScore(score.Categories.Reliability))
	tb.Row("Coverage", format.FmtScore(score.Categories.Coverage))
	tb.Row("Performance", format.FmtScore(score.Categories.Performance))
	tb.Footer("OVERALL", format.FmtScore(score.Overall))
	b.WriteString(tb.String())
	b.WriteString("\n")

	if len(score.Issues) > 0 {
		it := format.NewTable(mode)
		it.Title(fmt.Sprintf("Issues (%d)", len(score.Issues)))
		it.Header("Severity", "Category", "Test", "Message")
		it.Columns(format.ColumnConfig{Number: 4, MaxWidth: 60})
		for _, iss := range score.Issues {
			it.Row(string(iss.Severity), iss.Category, iss.TestID, iss.Message)
		}
		b.WriteString("\n")
		b.WriteString(it.String())
		b.WriteString("\n")
	}

	if len(score.Suggestions) > 0 {
		b.WriteString("\nSuggestions:\n")
		for _, s := range score.Suggestions {
			b.WriteString("  - " + s + "\n")
		}
	}

	return b.String()
}

// CoverageGaps renders the cross-cutting coverage percentages.
func CoverageGaps(cov quality.Coverage, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Title("Coverage")
	tb.Header("Dimension", "Coverage")
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	tb.Row("Functional", format.FmtPercent(cov.FunctionalCoverage))
	tb.Row("Error handling", format.FmtPercent(cov.ErrorCoverage))
	tb.Row("Edge cases", format.FmtPercent(cov.EdgeCaseCoverage))
	tb.Row("Security", format.FmtPercent(cov.SecurityCoverage))
	tb.Row("Performance", format.FmtPercent(cov.PerformanceCoverage))
	tb.Row("Accessibility", format.FmtPercent(cov.AccessibilityCoverage))
	return tb.String()
}
