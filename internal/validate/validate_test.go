package validate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"webforge/internal/testcase"
)

func rawGUICase(id, name string, overrides map[string]any) map[string]any {
	m := map[string]any{
		"id":   id,
		"name": name,
		"steps": []any{
			map[string]any{"action": "goto", "value": "https://app.test"},
			map[string]any{"action": "click", "selector": "#submit"},
		},
		"assertions": []any{
			map[string]any{"type": "visible", "selector": "#result"},
		},
	}
	for k, v := range overrides {
		m[k] = v
	}
	return m
}

func TestGUI_MinimumFields(t *testing.T) {
	tests := []struct {
		name string
		raw  []any
		want int
	}{
		{"valid case accepted", []any{rawGUICase("t1", "Login", nil)}, 1},
		{"missing id skipped", []any{map[string]any{"name": "x", "steps": []any{map[string]any{}}}}, 0},
		{"missing name skipped", []any{map[string]any{"id": "x", "steps": []any{map[string]any{}}}}, 0},
		{"empty steps skipped", []any{map[string]any{"id": "x", "name": "x", "steps": []any{}}}, 0},
		{"non-object skipped", []any{"just a string", 42}, 0},
		{"bad element does not poison batch", []any{"garbage", rawGUICase("t1", "Login", nil)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GUI(tt.raw, Options{AppURL: "https://app.test"}, nil)
			if len(got) != tt.want {
				t.Errorf("GUI accepted %d cases, want %d", len(got), tt.want)
			}
		})
	}
}

func TestGUI_DuplicateIDs(t *testing.T) {
	raw := []any{
		rawGUICase("t1", "First", nil),
		rawGUICase("t1", "Second", nil),
		rawGUICase("t1", "Third", nil),
	}
	got := GUI(raw, Options{AppURL: "https://app.test"}, nil)
	want := []string{"t1", "t1-1", "t1-2"}
	if len(got) != 3 {
		t.Fatalf("accepted %d cases, want 3", len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, got[i].ID, want[i])
		}
	}
}

func TestGUI_InvalidPriorityDefaultsToMedium(t *testing.T) {
	raw := []any{rawGUICase("t1", "Login", map[string]any{"priority": "urgent"})}
	got := GUI(raw, Options{AppURL: "https://app.test"}, nil)
	if got[0].Priority != testcase.PriorityMedium {
		t.Errorf("priority = %q, want medium", got[0].Priority)
	}
}

func TestGUI_SynthesizedGoto(t *testing.T) {
	raw := []any{map[string]any{
		"id": "t1", "name": "Click around",
		"steps": []any{map[string]any{"action": "click", "selector": "#a"}},
	}}
	got := GUI(raw, Options{AppURL: "https://app.test"}, nil)
	steps := got[0].Steps
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2 (synthesized goto + click)", len(steps))
	}
	if steps[0].Action != testcase.ActionGoto || steps[0].Value != "https://app.test" {
		t.Errorf("first step = %+v, want goto with app URL", steps[0])
	}
	gotos := 0
	for _, s := range steps {
		if s.Action == testcase.ActionGoto {
			gotos++
		}
	}
	if gotos != 1 {
		t.Errorf("synthesized %d goto steps, want exactly 1", gotos)
	}
}

func TestGUI_GotoNotDuplicated(t *testing.T) {
	raw := []any{rawGUICase("t1", "Login", nil)}
	got := GUI(raw, Options{AppURL: "https://app.test"}, nil)
	if len(got[0].Steps) != 2 {
		t.Errorf("existing goto duplicated: %d steps, want 2", len(got[0].Steps))
	}
}

func TestGUI_StepDefaults(t *testing.T) {
	raw := []any{map[string]any{
		"id": "t1", "name": "Defaults",
		"steps": []any{
			map[string]any{"action": "teleport", "selector": "#x"},
			map[string]any{"action": "fill", "selector": "#y", "options": map[string]any{"timeout": float64(2000), "force": true}},
			map[string]any{"action": "wait", "options": map[string]any{"timeout": float64(-5)}},
		},
	}}
	got := GUI(raw, Options{AppURL: "https://app.test"}, nil)
	steps := got[0].Steps[1:] // skip synthesized goto

	if steps[0].Action != testcase.ActionClick {
		t.Errorf("unknown action coerced to %q, want click", steps[0].Action)
	}
	if steps[0].Options.Timeout != testcase.DefaultStepTimeout {
		t.Errorf("default timeout = %d, want %d", steps[0].Options.Timeout, testcase.DefaultStepTimeout)
	}
	if steps[0].Description != "Step 1" {
		t.Errorf("default description = %q, want \"Step 1\"", steps[0].Description)
	}
	if steps[1].Options.Timeout != 2000 || !steps[1].Options.Force {
		t.Errorf("explicit options not kept: %+v", steps[1].Options)
	}
	if steps[2].Options.Timeout != testcase.DefaultStepTimeout {
		t.Errorf("negative timeout = %d, want default", steps[2].Options.Timeout)
	}
}

func TestGUI_AssertionDefaults(t *testing.T) {
	raw := []any{map[string]any{
		"id": "t1", "name": "Asserts",
		"steps": []any{map[string]any{"action": "click"}},
		"assertions": []any{
			map[string]any{"type": "teleported", "operator": "resembles"},
			map[string]any{"type": "text", "expected": "Welcome", "operator": "contains", "retry": false},
		},
	}}
	got := GUI(raw, Options{AppURL: "https://app.test"}, nil)
	a := got[0].Assertions

	if a[0].Type != testcase.AssertVisible {
		t.Errorf("unknown assertion type coerced to %q, want visible", a[0].Type)
	}
	if a[0].Operator != "equals" {
		t.Errorf("unknown operator coerced to %q, want equals", a[0].Operator)
	}
	if a[0].Timeout != testcase.DefaultAssertionTimeout || !a[0].Retry {
		t.Errorf("assertion defaults not applied: %+v", a[0])
	}
	if a[1].Retry {
		t.Error("explicit retry=false overridden")
	}
	if a[1].Operator != "contains" {
		t.Errorf("valid operator rewritten to %q", a[1].Operator)
	}
}

func TestGUI_Truncation(t *testing.T) {
	var raw []any
	for range 40 {
		raw = append(raw, rawGUICase("t", "Case", nil))
	}
	got := GUI(raw, Options{AppURL: "https://app.test"}, nil)
	if len(got) != DefaultMaxGUITestCases {
		t.Errorf("accepted %d cases, want default cap %d", len(got), DefaultMaxGUITestCases)
	}

	got = GUI(raw, Options{AppURL: "https://app.test", MaxTestCases: 5}, nil)
	if len(got) != 5 {
		t.Errorf("accepted %d cases, want explicit cap 5", len(got))
	}
}

func TestGUI_Idempotent(t *testing.T) {
	raw := []any{
		rawGUICase("t1", "Login", map[string]any{"priority": "high", "tags": []any{"auth", "auth", "smoke"}}),
		rawGUICase("t2", "Logout", nil),
	}
	first := GUI(raw, Options{AppURL: "https://app.test"}, nil)
	second := GUI(raw, Options{AppURL: "https://app.test"}, nil)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("validation not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"auth", "smoke"}, first[0].Tags); diff != "" {
		t.Errorf("tags not deduped in order (-want +got):\n%s", diff)
	}
}

func TestGUI_ExistingIDSet(t *testing.T) {
	taken := testcase.NewIDSet("t1")
	got := GUI([]any{rawGUICase("t1", "Collides", nil)}, Options{AppURL: "https://app.test"}, taken)
	if got[0].ID != "t1-1" {
		t.Errorf("id = %q, want t1-1 against pre-existing set", got[0].ID)
	}
	if !taken.Has("t1-1") {
		t.Error("assigned id not recorded in accumulator")
	}
}

func TestGUI_DescriptionDefaulting(t *testing.T) {
	raw := []any{
		rawGUICase("t1", "Login flow", map[string]any{"description": "short"}),
		rawGUICase("t2", "Logout", map[string]any{"description": "A real description of this test"}),
	}
	got := GUI(raw, Options{AppURL: "https://app.test"}, nil)
	if got[0].Description == "short" {
		t.Error("sub-10-char description not defaulted")
	}
	if got[1].Description != "A real description of this test" {
		t.Errorf("valid description rewritten to %q", got[1].Description)
	}
}
