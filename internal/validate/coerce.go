package validate

import (
	"strconv"
	"strings"
)

// Coercion helpers for untrusted LLM JSON. Every helper accepts any shape
// and returns a usable zero value instead of failing: a skipped field is
// always preferable to a rejected test case.

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

func asBool(v any, def bool) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if p, err := strconv.ParseBool(b); err == nil {
			return p
		}
	}
	return def
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// asStringSlice keeps only the convertible elements, in order.
func asStringSlice(v any) []string {
	var out []string
	for _, el := range asSlice(v) {
		if s := asString(el); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// asStringMap flattens a map's values to strings, dropping empties.
func asStringMap(v any) map[string]string {
	src := asMap(v)
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, val := range src {
		if s := asString(val); s != "" {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// dedupeStrings removes duplicates keeping first-occurrence order.
func dedupeStrings(in []string) []string {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
