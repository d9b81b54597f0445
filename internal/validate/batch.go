package validate

import (
	"bytes"
	"encoding/json"
)

// Batch extracts a top-level array of candidate objects from a raw LLM
// payload. Models wrap JSON in markdown fences or surround it with prose;
// extraction tries progressively harder strategies before giving up.
// ok=false is not an error: it routes the caller to the deterministic
// fallback suite.
func Batch(raw json.RawMessage) (items []any, ok bool) {
	cleaned := cleanPayload(raw)
	if len(cleaned) == 0 {
		return nil, false
	}

	if items, ok := tryArray(cleaned); ok {
		return items, true
	}

	// Some models wrap the array in an envelope object. An envelope with
	// none of the known keys still falls through to bracket isolation: the
	// array may hide under an arbitrary key.
	var envelope map[string]any
	if err := json.Unmarshal(cleaned, &envelope); err == nil {
		for _, key := range []string{"testCases", "tests", "cases"} {
			if arr, isArr := envelope[key].([]any); isArr {
				return arr, true
			}
		}
	}

	// Last resort: isolate the outermost bracketed region from prose.
	start := bytes.IndexByte(cleaned, '[')
	end := bytes.LastIndexByte(cleaned, ']')
	if start >= 0 && end > start {
		if items, ok := tryArray(cleaned[start : end+1]); ok {
			return items, true
		}
	}
	return nil, false
}

func tryArray(data []byte) ([]any, bool) {
	var arr []any
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

// cleanPayload strips markdown code fences and surrounding whitespace.
// Handles ```json\n...\n```, ```\n...\n``` and bare JSON.
func cleanPayload(data []byte) []byte {
	s := bytes.TrimSpace(data)
	if len(s) == 0 {
		return s
	}
	if bytes.HasPrefix(s, []byte("```")) {
		if idx := bytes.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		}
		if bytes.HasSuffix(s, []byte("```")) {
			s = s[:len(s)-3]
		}
		s = bytes.TrimSpace(s)
	}
	return s
}
