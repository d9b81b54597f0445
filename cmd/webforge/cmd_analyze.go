package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webforge/internal/format"
	"webforge/internal/quality"
	"webforge/internal/report"
	"webforge/internal/testcase"
)

var analyzeFlags struct {
	kind         string
	outputFormat string
	outputPath   string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <suite.json>",
	Short: "Score an existing test suite",
	Long: `Analyze scores a suite JSON file across completeness, maintainability,
reliability, coverage and performance, and lists itemized issues with
remediation suggestions.

Usage:
  webforge analyze .webforge/suites/gui-suite.json
  webforge analyze --kind=api api-suite.json --format=markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.kind, "kind", "gui", "Suite kind: gui or api")
	f.StringVar(&analyzeFlags.outputFormat, "format", "ascii", "Report format: ascii or markdown")
	f.StringVarP(&analyzeFlags.outputPath, "output", "o", "", "Also write the score report as JSON to this path")
}

func runAnalyze(_ *cobra.Command, args []string) error {
	mode := format.ParseMode(analyzeFlags.outputFormat)

	var score quality.Score
	var title string
	switch analyzeFlags.kind {
	case "gui":
		cases, err := loadGUISuite(args[0])
		if err != nil {
			return err
		}
		score = quality.AnalyzeGUI(cases)
		title = "GUI Quality"
	case "api":
		cases, err := loadAPISuite(args[0])
		if err != nil {
			return err
		}
		score = quality.AnalyzeAPI(cases)
		title = "API Quality"
	default:
		return fmt.Errorf("unknown kind %q (want gui or api)", analyzeFlags.kind)
	}

	fmt.Println(report.Quality(title, score, mode))
	if analyzeFlags.outputPath != "" {
		return writeJSON(analyzeFlags.outputPath, score)
	}
	return nil
}

// loadGUISuite accepts either a bare case array or a generate result object
// with a "cases" field, so both suite files and snapshots analyze cleanly.
func loadGUISuite(path string) ([]testcase.TestCase, error) {
	var cases []testcase.TestCase
	if err := readJSONFile(path, &cases); err == nil {
		return cases, nil
	}
	var wrapped struct {
		Cases []testcase.TestCase `json:"cases"`
	}
	if err := readJSONFile(path, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Cases, nil
}

func loadAPISuite(path string) ([]testcase.APITestCase, error) {
	var cases []testcase.APITestCase
	if err := readJSONFile(path, &cases); err == nil {
		return cases, nil
	}
	var wrapped struct {
		Cases []testcase.APITestCase `json:"cases"`
	}
	if err := readJSONFile(path, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Cases, nil
}
