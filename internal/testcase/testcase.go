// Package testcase defines the canonical test-case data model shared by the
// validator, the edge-case engine, the quality analyzer, and the execution
// engine. The JSON field names are the wire contract: the runner dispatches
// on them, so they never change casually.
package testcase

// Priority of a test case. Unknown values are coerced to PriorityMedium
// during validation, never rejected.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Step actions understood by the GUI runner. An unknown action coerces to
// ActionClick.
const (
	ActionGoto       = "goto"
	ActionClick      = "click"
	ActionFill       = "fill"
	ActionSelect     = "select"
	ActionHover      = "hover"
	ActionWait       = "wait"
	ActionScreenshot = "screenshot"
	ActionScroll     = "scroll"
	ActionPress      = "press"
	ActionType       = "type"
	ActionCheck      = "check"
	ActionUncheck    = "uncheck"
)

// Assertion types understood by the GUI runner. Unknown types coerce to
// AssertVisible.
const (
	AssertVisible    = "visible"
	AssertText       = "text"
	AssertValue      = "value"
	AssertURL        = "url"
	AssertCount      = "count"
	AssertAttribute  = "attribute"
	AssertStyle      = "style"
	AssertScreenshot = "screenshot"
)

// ValidActions is the closed GUI step-action vocabulary.
var ValidActions = map[string]bool{
	ActionGoto: true, ActionClick: true, ActionFill: true, ActionSelect: true,
	ActionHover: true, ActionWait: true, ActionScreenshot: true,
	ActionScroll: true, ActionPress: true, ActionType: true,
	ActionCheck: true, ActionUncheck: true,
}

// ValidAssertionTypes is the closed GUI assertion-type vocabulary.
var ValidAssertionTypes = map[string]bool{
	AssertVisible: true, AssertText: true, AssertValue: true, AssertURL: true,
	AssertCount: true, AssertAttribute: true, AssertStyle: true,
	AssertScreenshot: true,
}

// ValidOperators is the assertion operator vocabulary. Default: "equals".
var ValidOperators = map[string]bool{
	"equals": true, "contains": true, "matches": true,
	"exists": true, "greater": true, "less": true,
}

// ValidWaitFor lists the recognized waitFor conditions.
var ValidWaitFor = map[string]bool{
	"networkidle": true, "domcontentloaded": true, "load": true, "element": true,
}

// Default timeouts, in milliseconds.
const (
	DefaultStepTimeout      = 10000
	DefaultAssertionTimeout = 5000
)

// TestCase is one GUI test case. Created by validation of one LLM batch or
// one edge-case batch; after insertion it is only reordered (Prioritize),
// never mutated.
type TestCase struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Category          string      `json:"category"`
	Priority          Priority    `json:"priority"`
	EstimatedDuration string      `json:"estimatedDuration,omitempty"`
	Tags              []string    `json:"tags"`
	Prerequisites     []string    `json:"prerequisites,omitempty"`
	TestData          *TestData   `json:"testData,omitempty"`
	Steps             []Step      `json:"steps"`
	Assertions        []Assertion `json:"assertions"`
	Cleanup           []Step      `json:"cleanup,omitempty"`
}

// TestData carries named inputs and expected outputs for data-driven steps.
type TestData struct {
	Inputs          map[string]any `json:"inputs,omitempty"`
	ExpectedOutputs map[string]any `json:"expectedOutputs,omitempty"`
}

// Step is one GUI action. Description defaults to "Step N" during validation.
type Step struct {
	Action      string      `json:"action"`
	Selector    string      `json:"selector,omitempty"`
	Value       string      `json:"value,omitempty"`
	Options     StepOptions `json:"options"`
	WaitFor     string      `json:"waitFor,omitempty"`
	Retry       bool        `json:"retry,omitempty"`
	Description string      `json:"description"`
}

// StepOptions tune a single step. Timeout is milliseconds, never negative.
type StepOptions struct {
	Timeout int  `json:"timeout"`
	Force   bool `json:"force,omitempty"`
}

// Assertion is one GUI expectation. Expected semantics depend on Type.
type Assertion struct {
	Type     string `json:"type"`
	Selector string `json:"selector,omitempty"`
	Expected any    `json:"expected,omitempty"`
	Operator string `json:"operator"`
	Timeout  int    `json:"timeout"`
	Retry    bool   `json:"retry"`
}
