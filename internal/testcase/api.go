package testcase

// HTTP methods accepted for API test cases. Validation upper-cases before
// checking membership.
var ValidMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true, "DELETE": true,
}

// API assertion types understood by the API runner.
const (
	APIAssertStatus      = "status"
	APIAssertHeader      = "header"
	APIAssertBody        = "body"
	APIAssertSchema      = "schema"
	APIAssertPerformance = "performance"
	APIAssertSecurity    = "security"
)

// ValidAPIAssertionTypes is the closed API assertion vocabulary.
var ValidAPIAssertionTypes = map[string]bool{
	APIAssertStatus: true, APIAssertHeader: true, APIAssertBody: true,
	APIAssertSchema: true, APIAssertPerformance: true, APIAssertSecurity: true,
}

// DefaultStatusFor returns the expected HTTP status implied by a method when
// the LLM supplied none.
func DefaultStatusFor(method string) int {
	switch method {
	case "POST":
		return 201
	case "DELETE":
		return 204
	default:
		return 200
	}
}

// APITestCase is one API test case. Parallel to TestCase but
// endpoint-oriented.
type APITestCase struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Category           string            `json:"category"`
	Priority           Priority          `json:"priority"`
	EstimatedDuration  string            `json:"estimatedDuration,omitempty"`
	Tags               []string          `json:"tags"`
	Method             string            `json:"method"`
	Endpoint           string            `json:"endpoint"`
	Headers            map[string]string `json:"headers,omitempty"`
	Body               any               `json:"body,omitempty"`
	QueryParams        map[string]string `json:"queryParams,omitempty"`
	ExpectedStatus     int               `json:"expectedStatus"`
	Timeout            int               `json:"timeout,omitempty"`
	Assertions         []APIAssertion    `json:"assertions"`
	Dependencies       []string          `json:"dependencies,omitempty"`
	DataSetup          []SubRequest      `json:"dataSetup,omitempty"`
	DataCleanup        []SubRequest      `json:"dataCleanup,omitempty"`
	VariableExtraction map[string]string `json:"variableExtraction,omitempty"`
}

// APIAssertion is one API expectation. Target names a header or a response
// JSON path depending on Type.
type APIAssertion struct {
	Type     string `json:"type"`
	Target   string `json:"target,omitempty"`
	Expected any    `json:"expected,omitempty"`
	Operator string `json:"operator"`
}

// SubRequest is a named setup/cleanup sub-operation run before or after the
// main request of a dependent test.
type SubRequest struct {
	Endpoint string            `json:"endpoint"`
	Method   string            `json:"method"`
	Body     any               `json:"body,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
}
