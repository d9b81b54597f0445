package edgecase

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"webforge/internal/discover"
	"webforge/internal/testcase"
)

func samplePage() *discover.PageInfo {
	return &discover.PageInfo{
		Title: "Shop",
		URL:   "https://shop.test",
		Forms: []discover.Form{{
			Selector: "#signup",
			Inputs: []discover.Input{
				{Selector: "#email", Type: "email", Required: true},
				{Selector: "#name", Type: "text"},
				{Selector: "#newsletter", Type: "checkbox"},
			},
		}},
		Buttons: []discover.Button{{Selector: "#buy", Text: "Buy"}},
		Links:   []discover.Link{{Selector: "a.about", Href: "/about"}},
		Inputs: []discover.Input{
			{Selector: "#email", Type: "email", Required: true},
			{Selector: "#name", Type: "text"},
		},
	}
}

func findCase(t *testing.T, cases []testcase.TestCase, idPrefix string) testcase.TestCase {
	t.Helper()
	for _, c := range cases {
		if strings.HasPrefix(c.ID, idPrefix) {
			return c
		}
	}
	t.Fatalf("no case with id prefix %q in %d cases", idPrefix, len(cases))
	return testcase.TestCase{}
}

func TestGUI_EmptyFormRule(t *testing.T) {
	cases := GUI(samplePage(), DefaultConfig(), nil)
	c := findCase(t, cases, "edge-empty-form")

	if c.Category != "error" {
		t.Errorf("category = %q, want error", c.Category)
	}
	last := c.Steps[len(c.Steps)-1]
	if last.Action != testcase.ActionClick {
		t.Errorf("last step action = %q, want click (submit)", last.Action)
	}
	if len(c.Assertions) == 0 || c.Assertions[0].Type != testcase.AssertVisible {
		t.Errorf("assertions = %+v, want a visible error-indicator assertion", c.Assertions)
	}
}

func TestGUI_RequiredFieldRule(t *testing.T) {
	cases := GUI(samplePage(), DefaultConfig(), nil)
	c := findCase(t, cases, "edge-required-fields")

	// The only fillable optional text input is #name; #email is required and
	// must stay empty.
	for _, s := range c.Steps {
		if s.Action == testcase.ActionFill && s.Selector == "#email" {
			t.Error("required field #email was filled; rule must leave it empty")
		}
	}
	filledName := false
	for _, s := range c.Steps {
		if s.Action == testcase.ActionFill && s.Selector == "#name" {
			filledName = true
		}
	}
	if !filledName {
		t.Error("optional field #name not filled")
	}
}

func TestGUI_MaxLengthRule(t *testing.T) {
	cases := GUI(samplePage(), DefaultConfig(), nil)
	c := findCase(t, cases, "edge-max-length")

	var fill testcase.Step
	for _, s := range c.Steps {
		if s.Action == testcase.ActionFill {
			fill = s
		}
	}
	if len(fill.Value) != 1000 {
		t.Errorf("probe value length = %d, want 1000", len(fill.Value))
	}
	if c.Assertions[0].Expected != 255 {
		t.Errorf("assumed cap = %v, want default 255", c.Assertions[0].Expected)
	}
}

func TestGUI_ConfigurableLengthCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLengthCap = 100
	cases := GUI(samplePage(), cfg, nil)
	c := findCase(t, cases, "edge-max-length")
	if c.Assertions[0].Expected != 100 {
		t.Errorf("configured cap = %v, want 100", c.Assertions[0].Expected)
	}
}

func TestGUI_EmailFormatRule(t *testing.T) {
	cases := GUI(samplePage(), DefaultConfig(), nil)
	c := findCase(t, cases, "edge-email-format")

	fills := 0
	for _, s := range c.Steps {
		if s.Action == testcase.ActionFill && s.Selector == "#email" {
			fills++
		}
	}
	if fills != len(invalidEmails) {
		t.Errorf("email probe fills = %d, want %d (one per invalid address)", fills, len(invalidEmails))
	}
}

func TestGUI_XSSRule(t *testing.T) {
	cases := GUI(samplePage(), DefaultConfig(), nil)
	c := findCase(t, cases, "edge-xss-probe")

	if c.Category != "security" || c.Priority != testcase.PriorityCritical {
		t.Errorf("xss probe category/priority = %q/%q, want security/critical", c.Category, c.Priority)
	}
	found := false
	for _, s := range c.Steps {
		if s.Action == testcase.ActionFill && s.Value == xssPayload {
			found = true
		}
	}
	if !found {
		t.Error("xss payload not filled into any step")
	}
}

func TestGUI_CategoryToggles(t *testing.T) {
	cfg := Config{Security: true, MaxEdgeCases: 50}
	cases := GUI(samplePage(), cfg, nil)
	for _, c := range cases {
		if c.Category != "security" {
			t.Errorf("security-only config produced %q case %s", c.Category, c.ID)
		}
	}
}

func TestGUI_Truncation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEdgeCases = 3
	all := GUI(samplePage(), DefaultConfig(), nil)
	capped := GUI(samplePage(), cfg, nil)
	if len(capped) != 3 {
		t.Fatalf("capped synthesis = %d cases, want 3", len(capped))
	}
	// Truncation preserves synthesis order: the capped result is a prefix.
	for i := range capped {
		if capped[i].ID != all[i].ID {
			t.Errorf("capped[%d] = %q, want prefix of full order (%q)", i, capped[i].ID, all[i].ID)
		}
	}
}

func TestGUI_EmptyPage(t *testing.T) {
	cases := GUI(&discover.PageInfo{URL: "https://bare.test"}, DefaultConfig(), nil)
	// No forms, inputs or links: only the page-level accessibility and
	// performance probes remain.
	for _, c := range cases {
		if c.Category != "accessibility" && c.Category != "performance" {
			t.Errorf("empty page produced structural case %s (%s)", c.ID, c.Category)
		}
	}
	if len(cases) == 0 {
		t.Error("empty page produced zero cases; page-level probes expected")
	}
}

func TestGUI_NilPageDoesNotPanic(t *testing.T) {
	cases := GUI(nil, DefaultConfig(), nil)
	if cases == nil {
		t.Log("nil page produced zero structural cases")
	}
}

func TestGUI_Deterministic(t *testing.T) {
	a := GUI(samplePage(), DefaultConfig(), nil)
	b := GUI(samplePage(), DefaultConfig(), nil)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("synthesis not deterministic:\n%s", diff)
	}
}

func TestGUI_UniqueIDs(t *testing.T) {
	cases := GUI(samplePage(), DefaultConfig(), nil)
	seen := map[string]bool{}
	for _, c := range cases {
		if seen[c.ID] {
			t.Errorf("duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	}
}
