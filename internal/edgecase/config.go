// Package edgecase derives boundary, security, accessibility and
// performance test cases directly from structural facts. No LLM is
// involved: the rules encode known web edge cases, so this coverage is
// deterministic and survives an unavailable or low-quality model.
package edgecase

// Config selects which edge-case categories to synthesize.
type Config struct {
	Security        bool `json:"includeSecurityTests" yaml:"includeSecurityTests"`
	Boundary        bool `json:"includeBoundaryTests" yaml:"includeBoundaryTests"`
	DataValidation  bool `json:"includeDataValidationTests" yaml:"includeDataValidationTests"`
	PerformanceEdge bool `json:"includePerformanceEdgeCases" yaml:"includePerformanceEdgeCases"`
	Accessibility   bool `json:"includeAccessibilityTests" yaml:"includeAccessibilityTests"`

	// MaxEdgeCases caps the result in synthesis order, not priority order;
	// callers re-prioritize afterward when a total order matters.
	MaxEdgeCases int `json:"maxEdgeCases" yaml:"maxEdgeCases"`

	// MaxLengthCap is the assumed server-side field length cap probed by
	// the max-length rule. 255 is an assumption about typical column
	// widths, not a verified contract, hence configurable.
	MaxLengthCap int `json:"maxLengthCap" yaml:"maxLengthCap"`
}

// DefaultConfig enables every category.
func DefaultConfig() Config {
	return Config{
		Security:        true,
		Boundary:        true,
		DataValidation:  true,
		PerformanceEdge: true,
		Accessibility:   true,
		MaxEdgeCases:    20,
		MaxLengthCap:    255,
	}
}

func (c Config) maxCases() int {
	if c.MaxEdgeCases > 0 {
		return c.MaxEdgeCases
	}
	return DefaultConfig().MaxEdgeCases
}

func (c Config) lengthCap() int {
	if c.MaxLengthCap > 0 {
		return c.MaxLengthCap
	}
	return DefaultConfig().MaxLengthCap
}

// truncate applies the MaxEdgeCases cap preserving synthesis order.
func truncate[T any](cases []T, limit int) []T {
	if len(cases) > limit {
		return cases[:limit]
	}
	return cases
}
