// Package validate turns untrusted, free-form LLM output into well-formed
// test cases: minimum-field screening, per-field defaulting and coercion,
// and collision-free ID assignment. Validation never throws away a whole
// batch for one bad element and never mutates anything outside the
// accumulator it is given.
package validate

import (
	"fmt"
	"strings"

	"webforge/internal/logging"
	"webforge/internal/testcase"
)

// Default batch caps applied when Options.MaxTestCases is zero.
const (
	DefaultMaxGUITestCases = 25
	DefaultMaxAPITestCases = 30
)

// Options configure one validation pass.
type Options struct {
	// AppURL is the target application URL, used to synthesize a leading
	// goto step when a GUI case has none.
	AppURL string
	// MaxTestCases caps the accepted cases; zero means the per-suite default.
	MaxTestCases int
}

func (o Options) maxGUI() int {
	if o.MaxTestCases > 0 {
		return o.MaxTestCases
	}
	return DefaultMaxGUITestCases
}

func (o Options) maxAPI() int {
	if o.MaxTestCases > 0 {
		return o.MaxTestCases
	}
	return DefaultMaxAPITestCases
}

// GUI validates a batch of raw candidate objects into GUI test cases, in
// input order, truncated to the configured cap. Elements lacking id, name,
// or a non-empty steps array are skipped and logged. IDs are made unique
// against taken, which accumulates the assigned ids of this pass.
func GUI(raw []any, opts Options, taken testcase.IDSet) []testcase.TestCase {
	log := logging.New("validate")
	if taken == nil {
		taken = testcase.NewIDSet()
	}
	maxCases := opts.maxGUI()

	var out []testcase.TestCase
	for i, el := range raw {
		if len(out) >= maxCases {
			break
		}
		m := asMap(el)
		if m == nil {
			log.Debug("skipping non-object element", "index", i)
			continue
		}
		id := strings.TrimSpace(asString(m["id"]))
		name := strings.TrimSpace(asString(m["name"]))
		rawSteps := asSlice(m["steps"])
		if id == "" || name == "" || len(rawSteps) == 0 {
			log.Debug("skipping element missing id, name or steps", "index", i, "id", id)
			continue
		}

		tc := testcase.TestCase{
			ID:                testcase.EnsureUniqueID(id, taken),
			Name:              name,
			Description:       defaultDescription(asString(m["description"]), name),
			Category:          defaultCategory(asString(m["category"])),
			Priority:          NormalizePriority(asString(m["priority"])),
			EstimatedDuration: asString(m["estimatedDuration"]),
			Tags:              dedupeStrings(asStringSlice(m["tags"])),
			Prerequisites:     asStringSlice(m["prerequisites"]),
			TestData:          validateTestData(m["testData"]),
		}
		taken.Add(tc.ID)

		for j, rs := range rawSteps {
			tc.Steps = append(tc.Steps, validateStep(rs, j))
		}
		tc.Steps = ensureLeadingGoto(tc.Steps, opts.AppURL)

		for _, ra := range asSlice(m["assertions"]) {
			tc.Assertions = append(tc.Assertions, validateAssertion(ra))
		}
		for j, rs := range asSlice(m["cleanup"]) {
			tc.Cleanup = append(tc.Cleanup, validateStep(rs, j))
		}

		out = append(out, tc)
	}
	return out
}

// NormalizePriority lower-cases and coerces unknown values to medium.
func NormalizePriority(raw string) testcase.Priority {
	p := testcase.Priority(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case testcase.PriorityCritical, testcase.PriorityHigh, testcase.PriorityMedium, testcase.PriorityLow:
		return p
	}
	return testcase.PriorityMedium
}

// defaultDescription keeps a usable description or derives one from the
// test name. Anything under 10 characters counts as absent.
func defaultDescription(desc, name string) string {
	desc = strings.TrimSpace(desc)
	if len(desc) >= 10 {
		return desc
	}
	return fmt.Sprintf("Automated test case for %s", name)
}

func defaultCategory(cat string) string {
	cat = strings.ToLower(strings.TrimSpace(cat))
	if cat == "" {
		return "functional"
	}
	return cat
}

func validateTestData(v any) *testcase.TestData {
	m := asMap(v)
	if m == nil {
		return nil
	}
	td := &testcase.TestData{
		Inputs:          asMap(m["inputs"]),
		ExpectedOutputs: asMap(m["expectedOutputs"]),
	}
	if len(td.Inputs) == 0 && len(td.ExpectedOutputs) == 0 {
		return nil
	}
	return td
}

// validateStep coerces one raw step. Unknown actions become click; the
// description defaults to "Step N" (1-based).
func validateStep(v any, index int) testcase.Step {
	m := asMap(v)
	step := testcase.Step{
		Action:      strings.ToLower(strings.TrimSpace(asString(m["action"]))),
		Selector:    asString(m["selector"]),
		Value:       asString(m["value"]),
		Retry:       asBool(m["retry"], false),
		Description: strings.TrimSpace(asString(m["description"])),
		Options:     testcase.StepOptions{Timeout: testcase.DefaultStepTimeout},
	}
	if !testcase.ValidActions[step.Action] {
		step.Action = testcase.ActionClick
	}
	if wf := strings.ToLower(asString(m["waitFor"])); testcase.ValidWaitFor[wf] {
		step.WaitFor = wf
	}
	if om := asMap(m["options"]); om != nil {
		if t := asInt(om["timeout"]); t > 0 {
			step.Options.Timeout = t
		}
		step.Options.Force = asBool(om["force"], false)
	}
	if step.Description == "" {
		step.Description = fmt.Sprintf("Step %d", index+1)
	}
	return step
}

// validateAssertion coerces one raw assertion. Unknown types become
// visible, unknown operators equals; retry defaults to true.
func validateAssertion(v any) testcase.Assertion {
	m := asMap(v)
	a := testcase.Assertion{
		Type:     strings.ToLower(strings.TrimSpace(asString(m["type"]))),
		Selector: asString(m["selector"]),
		Operator: strings.ToLower(strings.TrimSpace(asString(m["operator"]))),
		Timeout:  testcase.DefaultAssertionTimeout,
		Retry:    asBool(m["retry"], true),
	}
	if m != nil {
		a.Expected = m["expected"]
	}
	if !testcase.ValidAssertionTypes[a.Type] {
		a.Type = testcase.AssertVisible
	}
	if !testcase.ValidOperators[a.Operator] {
		a.Operator = "equals"
	}
	if t := asInt(m["timeout"]); t > 0 {
		a.Timeout = t
	}
	return a
}

// ensureLeadingGoto prepends a synthesized goto step when the case has
// none, so every GUI case starts from the target application.
func ensureLeadingGoto(steps []testcase.Step, appURL string) []testcase.Step {
	for _, s := range steps {
		if s.Action == testcase.ActionGoto {
			return steps
		}
	}
	nav := testcase.Step{
		Action:      testcase.ActionGoto,
		Value:       appURL,
		WaitFor:     "load",
		Description: "Navigate to application",
		Options:     testcase.StepOptions{Timeout: testcase.DefaultStepTimeout},
	}
	return append([]testcase.Step{nav}, steps...)
}
