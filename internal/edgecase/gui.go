package edgecase

import (
	"fmt"
	"strings"

	"webforge/internal/discover"
	"webforge/internal/testcase"
)

// invalidEmails are the canonical malformed addresses probed against every
// email field.
var invalidEmails = []string{
	"plainaddress",
	"@missing-local.org",
	"missing-at-sign.net",
	"user@",
	"user@.com",
	"user name@example.com",
}

// xssPayload is the reflection marker. The assertion checks the page body
// does not contain the unescaped marker.
const xssPayload = `<script>alert('wf-xss')</script>`

// GUI synthesizes edge cases from discovered page structure. Rule order is
// fixed (forms, inputs, navigation, accessibility, security, performance)
// because truncation happens in synthesis order. Absent structural arrays
// produce zero cases for their category, never an error.
func GUI(page *discover.PageInfo, cfg Config, taken testcase.IDSet) []testcase.TestCase {
	if page == nil {
		page = &discover.PageInfo{}
	}
	if taken == nil {
		taken = testcase.NewIDSet()
	}
	g := &guiSynth{page: page, cfg: cfg, taken: taken}

	if cfg.Boundary {
		g.formCases()
	}
	if cfg.Boundary || cfg.DataValidation {
		g.inputCases()
	}
	if cfg.Boundary {
		g.navigationCases()
	}
	if cfg.Accessibility {
		g.accessibilityCases()
	}
	if cfg.Security {
		g.securityCases()
	}
	if cfg.PerformanceEdge {
		g.performanceCases()
	}
	return truncate(g.out, cfg.maxCases())
}

type guiSynth struct {
	page  *discover.PageInfo
	cfg   Config
	taken testcase.IDSet
	out   []testcase.TestCase
}

func (g *guiSynth) add(tc testcase.TestCase) {
	tc.ID = testcase.EnsureUniqueID(tc.ID, g.taken)
	g.taken.Add(tc.ID)
	g.out = append(g.out, tc)
}

func gotoStep(url string) testcase.Step {
	return testcase.Step{
		Action:      testcase.ActionGoto,
		Value:       url,
		WaitFor:     "load",
		Description: "Navigate to application",
		Options:     testcase.StepOptions{Timeout: testcase.DefaultStepTimeout},
	}
}

func step(action, selector, value, desc string) testcase.Step {
	return testcase.Step{
		Action:      action,
		Selector:    selector,
		Value:       value,
		Description: desc,
		Retry:       true,
		Options:     testcase.StepOptions{Timeout: testcase.DefaultStepTimeout},
	}
}

func visibleAssertion(selector string) testcase.Assertion {
	return testcase.Assertion{
		Type:     testcase.AssertVisible,
		Selector: selector,
		Operator: "exists",
		Timeout:  testcase.DefaultAssertionTimeout,
		Retry:    true,
	}
}

// errorIndicator matches the usual validation-error affordances.
const errorIndicator = ".error, .invalid, [role=alert], .field-error, .validation-error"

// formCases covers empty submission and required-field gaps per form.
func (g *guiSynth) formCases() {
	for i, form := range g.page.Forms {
		submit := fmt.Sprintf("%s button[type=submit], %s input[type=submit]", form.Selector, form.Selector)

		g.add(testcase.TestCase{
			ID:          fmt.Sprintf("edge-empty-form-%d", i+1),
			Name:        fmt.Sprintf("Empty submission of form %s", form.Selector),
			Description: "Submit the form with no fields filled and expect a visible validation error",
			Category:    "error",
			Priority:    testcase.PriorityHigh,
			Tags:        []string{"edge-case", "boundary", "form"},
			Steps: []testcase.Step{
				gotoStep(g.page.URL),
				step(testcase.ActionClick, submit, "", "Submit the empty form"),
			},
			Assertions: []testcase.Assertion{visibleAssertion(errorIndicator)},
		})

		required := discover.RequiredInputs(form)
		if len(required) == 0 {
			continue
		}
		requiredSet := make(map[string]bool, len(required))
		for _, in := range required {
			requiredSet[in.Selector] = true
		}
		steps := []testcase.Step{gotoStep(g.page.URL)}
		for _, in := range discover.TextInputs(form) {
			if requiredSet[in.Selector] {
				continue
			}
			steps = append(steps, step(testcase.ActionFill, in.Selector, "sample value",
				fmt.Sprintf("Fill optional field %s", in.Selector)))
		}
		steps = append(steps, step(testcase.ActionClick, submit, "", "Submit with required fields empty"))

		g.add(testcase.TestCase{
			ID:          fmt.Sprintf("edge-required-fields-%d", i+1),
			Name:        fmt.Sprintf("Required fields left empty in form %s", form.Selector),
			Description: "Fill every optional field, leave required ones empty, submit, and expect a validation error",
			Category:    "error",
			Priority:    testcase.PriorityHigh,
			Tags:        []string{"edge-case", "boundary", "form", "required"},
			Steps:       steps,
			Assertions:  []testcase.Assertion{visibleAssertion(errorIndicator)},
		})
	}
}

// inputCases covers max-length truncation and email format validation.
func (g *guiSynth) inputCases() {
	probe := strings.Repeat("A", 1000)
	capLen := g.cfg.lengthCap()

	for i, in := range g.page.Inputs {
		if !g.cfg.Boundary {
			break
		}
		switch in.Type {
		case "text", "email", "password":
		default:
			continue
		}
		g.add(testcase.TestCase{
			ID:          fmt.Sprintf("edge-max-length-%d", i+1),
			Name:        fmt.Sprintf("Max length probe on %s", in.Selector),
			Description: fmt.Sprintf("Fill the field with 1000 characters and expect the stored value truncated at %d", capLen),
			Category:    "boundary",
			Priority:    testcase.PriorityMedium,
			Tags:        []string{"edge-case", "boundary", "input"},
			TestData:    &testcase.TestData{Inputs: map[string]any{in.Selector: probe}},
			Steps: []testcase.Step{
				gotoStep(g.page.URL),
				step(testcase.ActionFill, in.Selector, probe, "Fill with oversized value"),
			},
			Assertions: []testcase.Assertion{{
				Type:     testcase.AssertValue,
				Selector: in.Selector,
				Expected: capLen,
				Operator: "less",
				Timeout:  testcase.DefaultAssertionTimeout,
				Retry:    true,
			}},
		})
	}

	if !g.cfg.DataValidation {
		return
	}
	for i, in := range g.page.Inputs {
		if in.Type != "email" {
			continue
		}
		steps := []testcase.Step{gotoStep(g.page.URL)}
		for _, email := range invalidEmails {
			steps = append(steps,
				step(testcase.ActionFill, in.Selector, email, fmt.Sprintf("Enter invalid email %q", email)),
				step(testcase.ActionPress, in.Selector, "Tab", "Blur the field"),
			)
		}
		g.add(testcase.TestCase{
			ID:          fmt.Sprintf("edge-email-format-%d", i+1),
			Name:        fmt.Sprintf("Invalid email formats rejected by %s", in.Selector),
			Description: "Enter each canonical invalid email address, blur, and expect the field marked invalid",
			Category:    "validation",
			Priority:    testcase.PriorityMedium,
			Tags:        []string{"edge-case", "validation", "email"},
			Steps:       steps,
			Assertions: []testcase.Assertion{{
				Type:     testcase.AssertAttribute,
				Selector: in.Selector + ":invalid, " + in.Selector + "[aria-invalid=true]",
				Operator: "exists",
				Timeout:  testcase.DefaultAssertionTimeout,
				Retry:    true,
			}},
		})
	}
}

// navigationCases covers the broken-link probe.
func (g *guiSynth) navigationCases() {
	if len(g.page.Links) == 0 {
		return
	}
	g.add(testcase.TestCase{
		ID:          "edge-broken-link",
		Name:        "Broken link shows an error page",
		Description: "Navigate to a known-nonexistent path and expect a 404 or error indicator",
		Category:    "error",
		Priority:    testcase.PriorityMedium,
		Tags:        []string{"edge-case", "navigation", "error"},
		Steps: []testcase.Step{
			gotoStep(strings.TrimRight(g.page.URL, "/") + "/wf-nonexistent-page-404"),
		},
		Assertions: []testcase.Assertion{{
			Type:     testcase.AssertText,
			Selector: "body",
			Expected: "404",
			Operator: "contains",
			Timeout:  testcase.DefaultAssertionTimeout,
			Retry:    true,
		}},
	})
}

// accessibilityCases covers keyboard navigation and ARIA/alt-text probes.
func (g *guiSynth) accessibilityCases() {
	g.add(testcase.TestCase{
		ID:          "edge-keyboard-navigation",
		Name:        "Keyboard navigation reaches interactive elements",
		Description: "Tab through the page and activate with Enter, expecting a focused element",
		Category:    "accessibility",
		Priority:    testcase.PriorityMedium,
		Tags:        []string{"edge-case", "accessibility", "keyboard"},
		Steps: []testcase.Step{
			gotoStep(g.page.URL),
			step(testcase.ActionPress, "body", "Tab", "Tab to first interactive element"),
			step(testcase.ActionPress, "body", "Tab", "Tab to second interactive element"),
			step(testcase.ActionPress, "body", "Enter", "Activate the focused element"),
		},
		Assertions: []testcase.Assertion{visibleAssertion(":focus")},
	})

	g.add(testcase.TestCase{
		ID:          "edge-aria-labels",
		Name:        "Interactive elements expose accessible names",
		Description: "Interactive elements carry ARIA labels or text and images carry alt text",
		Category:    "accessibility",
		Priority:    testcase.PriorityMedium,
		Tags:        []string{"edge-case", "accessibility", "aria"},
		Steps:      []testcase.Step{gotoStep(g.page.URL)},
		Assertions: []testcase.Assertion{
			{
				Type:     testcase.AssertCount,
				Selector: "button:not([aria-label]):empty, a:not([aria-label]):empty",
				Expected: 0,
				Operator: "equals",
				Timeout:  testcase.DefaultAssertionTimeout,
				Retry:    true,
			},
			{
				Type:     testcase.AssertCount,
				Selector: "img:not([alt])",
				Expected: 0,
				Operator: "equals",
				Timeout:  testcase.DefaultAssertionTimeout,
				Retry:    true,
			},
		},
	})
}

// securityCases covers the XSS reflection probe per text input.
func (g *guiSynth) securityCases() {
	for i, in := range g.page.Inputs {
		if in.Type != "text" && in.Type != "search" {
			continue
		}
		g.add(testcase.TestCase{
			ID:          fmt.Sprintf("edge-xss-probe-%d", i+1),
			Name:        fmt.Sprintf("XSS payload not reflected via %s", in.Selector),
			Description: "Fill a text field with a script payload and expect the page not to reflect it unescaped",
			Category:    "security",
			Priority:    testcase.PriorityCritical,
			Tags:        []string{"edge-case", "security", "xss"},
			TestData:    &testcase.TestData{Inputs: map[string]any{in.Selector: xssPayload}},
			Steps: []testcase.Step{
				gotoStep(g.page.URL),
				step(testcase.ActionFill, in.Selector, xssPayload, "Enter script payload"),
				step(testcase.ActionPress, in.Selector, "Enter", "Submit the payload"),
			},
			// Security semantics: the runner inverts "contains" for
			// security-category cases, so this passes when the body does NOT
			// contain the unescaped payload.
			Assertions: []testcase.Assertion{{
				Type:     testcase.AssertText,
				Selector: "body",
				Expected: xssPayload,
				Operator: "contains",
				Timeout:  testcase.DefaultAssertionTimeout,
				Retry:    true,
			}},
		})
		break // one probe per page is enough signal
	}
}

// performanceCases covers rapid interaction and slow-network probes.
func (g *guiSynth) performanceCases() {
	if len(g.page.Buttons) > 0 {
		b := g.page.Buttons[0]
		steps := []testcase.Step{gotoStep(g.page.URL)}
		for range 5 {
			steps = append(steps, step(testcase.ActionClick, b.Selector, "", "Rapid click"))
		}
		g.add(testcase.TestCase{
			ID:          "edge-rapid-interaction",
			Name:        "Rapid repeated clicks do not break the page",
			Description: "Click the same control five times in quick succession and expect the page to stay responsive",
			Category:    "performance",
			Priority:    testcase.PriorityLow,
			Tags:        []string{"edge-case", "performance"},
			Steps:       steps,
			Assertions:  []testcase.Assertion{visibleAssertion("body")},
		})
	}

	g.add(testcase.TestCase{
		ID:          "edge-slow-network",
		Name:        "Page remains usable under a long load",
		Description: "Load the page with a generous timeout and expect content within the budget",
		Category:    "performance",
		Priority:    testcase.PriorityLow,
		Tags:        []string{"edge-case", "performance", "slow-network"},
		Steps: []testcase.Step{{
			Action:      testcase.ActionGoto,
			Value:       g.page.URL,
			WaitFor:     "networkidle",
			Description: "Navigate and wait for network idle",
			Options:     testcase.StepOptions{Timeout: 30000},
		}},
		Assertions: []testcase.Assertion{visibleAssertion("body")},
	})
}
