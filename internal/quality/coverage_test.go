package quality

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"webforge/internal/testcase"
)

func TestCoverageGaps_EmptyCollections(t *testing.T) {
	got := CoverageGaps(nil, nil)
	if diff := cmp.Diff(Coverage{}, got); diff != "" {
		t.Errorf("empty collections (-want +got):\n%s", diff)
	}
}

func TestCoverageGaps_Combined(t *testing.T) {
	gui := []testcase.TestCase{
		{ID: "g1", Category: "functional"},
		{ID: "g2", Category: "error"},
		{ID: "g3", Category: "security", Tags: []string{"edge-case"}},
		{ID: "g4", Category: "accessibility"},
	}
	api := []testcase.APITestCase{
		{ID: "a1", Category: "crud", ExpectedStatus: 200},
		{ID: "a2", Category: "validation", ExpectedStatus: 400},
		{ID: "a3", Category: "performance", ExpectedStatus: 200},
		{ID: "a4", Category: "smoke", ExpectedStatus: 200},
	}
	got := CoverageGaps(gui, api)

	// 8 combined cases; 4 GUI cases for accessibility.
	want := Coverage{
		FunctionalCoverage:    38, // g1, a1, a4 → 3/8
		ErrorCoverage:         25, // g2, a2 → 2/8
		EdgeCaseCoverage:      13, // g3 → 1/8
		SecurityCoverage:      13, // g3 → 1/8
		PerformanceCoverage:   13, // a3 → 1/8
		AccessibilityCoverage: 25, // g4 → 1/4 GUI-only
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("combined coverage (-want +got):\n%s", diff)
	}
}

func TestCoverageGaps_ErrorStatusCountsAsErrorCoverage(t *testing.T) {
	api := []testcase.APITestCase{
		{ID: "a1", Category: "crud", ExpectedStatus: 404},
	}
	got := CoverageGaps(nil, api)
	if got.ErrorCoverage != 100 {
		t.Errorf("errorCoverage = %d, want 100 (4xx expectation counts)", got.ErrorCoverage)
	}
	if got.AccessibilityCoverage != 0 {
		t.Errorf("accessibilityCoverage = %d, want 0 with zero GUI cases", got.AccessibilityCoverage)
	}
}

func TestCoverageGaps_TagMatching(t *testing.T) {
	gui := []testcase.TestCase{
		{ID: "g1", Category: "form", Tags: []string{"security"}},
		{ID: "g2", Category: "form"},
	}
	got := CoverageGaps(gui, nil)
	if got.SecurityCoverage != 50 {
		t.Errorf("securityCoverage = %d, want 50 (tag match)", got.SecurityCoverage)
	}
}
