package validate

import (
	"strings"

	"webforge/internal/discover"
	"webforge/internal/logging"
	"webforge/internal/testcase"
)

// API validates a batch of raw candidate objects into API test cases, in
// input order, truncated to the configured cap. Elements lacking id, name,
// method or endpoint are skipped and logged. A status assertion is
// prepended when the LLM supplied none, so every case checks at least its
// response code.
func API(raw []any, opts Options, taken testcase.IDSet) []testcase.APITestCase {
	log := logging.New("validate")
	if taken == nil {
		taken = testcase.NewIDSet()
	}
	maxCases := opts.maxAPI()

	var out []testcase.APITestCase
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
		method := strings.ToUpper(strings.TrimSpace(asString(m["method"])))
		endpoint := strings.TrimSpace(asString(m["endpoint"]))
		if id == "" || name == "" || method == "" || endpoint == "" {
			log.Debug("skipping element missing id, name, method or endpoint", "index", i, "id", id)
			continue
		}
		if !testcase.ValidMethods[method] {
			method = "GET"
		}

		tc := testcase.APITestCase{
			ID:                 testcase.EnsureUniqueID(id, taken),
			Name:               name,
			Description:        defaultDescription(asString(m["description"]), name),
			Category:           defaultCategory(asString(m["category"])),
			Priority:           NormalizePriority(asString(m["priority"])),
			EstimatedDuration:  asString(m["estimatedDuration"]),
			Tags:               dedupeStrings(asStringSlice(m["tags"])),
			Method:             method,
			Endpoint:           discover.NormalizeEndpoint(endpoint),
			Headers:            asStringMap(m["headers"]),
			Body:               m["body"],
			QueryParams:        asStringMap(m["queryParams"]),
			Timeout:            asInt(m["timeout"]),
			Dependencies:       asStringSlice(m["dependencies"]),
			VariableExtraction: asStringMap(m["variableExtraction"]),
		}
		taken.Add(tc.ID)

		tc.ExpectedStatus = asInt(m["expectedStatus"])
		if tc.ExpectedStatus == 0 {
			tc.ExpectedStatus = testcase.DefaultStatusFor(method)
		}

		for _, ra := range asSlice(m["assertions"]) {
			tc.Assertions = append(tc.Assertions, validateAPIAssertion(ra))
		}
		tc.Assertions = ensureStatusAssertion(tc.Assertions, tc.ExpectedStatus)

		tc.DataSetup = validateSubRequests(m["dataSetup"])
		tc.DataCleanup = validateSubRequests(m["dataCleanup"])

		out = append(out, tc)
	}
	return out
}

// validateAPIAssertion coerces one raw API assertion. Unknown types become
// body assertions, unknown operators equals.
func validateAPIAssertion(v any) testcase.APIAssertion {
	m := asMap(v)
	a := testcase.APIAssertion{
		Type:     strings.ToLower(strings.TrimSpace(asString(m["type"]))),
		Target:   asString(m["target"]),
		Operator: strings.ToLower(strings.TrimSpace(asString(m["operator"]))),
	}
	if m != nil {
		a.Expected = m["expected"]
	}
	if a.Target == "" {
		a.Target = asString(m["path"])
	}
	if !testcase.ValidAPIAssertionTypes[a.Type] {
		a.Type = testcase.APIAssertBody
	}
	if !testcase.ValidOperators[a.Operator] {
		a.Operator = "equals"
	}
	return a
}

// ensureStatusAssertion prepends a status assertion when none exists.
func ensureStatusAssertion(assertions []testcase.APIAssertion, expectedStatus int) []testcase.APIAssertion {
	for _, a := range assertions {
		if a.Type == testcase.APIAssertStatus {
			return assertions
		}
	}
	status := testcase.APIAssertion{
		Type:     testcase.APIAssertStatus,
		Expected: expectedStatus,
		Operator: "equals",
	}
	return append([]testcase.APIAssertion{status}, assertions...)
}

// validateSubRequests coerces dataSetup/dataCleanup entries. Entries
// without an endpoint are dropped.
func validateSubRequests(v any) []testcase.SubRequest {
	var out []testcase.SubRequest
	for _, el := range asSlice(v) {
		m := asMap(el)
		endpoint := strings.TrimSpace(asString(m["endpoint"]))
		if endpoint == "" {
			continue
		}
		method := strings.ToUpper(strings.TrimSpace(asString(m["method"])))
		if !testcase.ValidMethods[method] {
			method = "GET"
		}
		out = append(out, testcase.SubRequest{
			Endpoint: discover.NormalizeEndpoint(endpoint),
			Method:   method,
			Body:     m["body"],
			Headers:  asStringMap(m["headers"]),
		})
	}
	return out
}
