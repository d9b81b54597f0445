package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Stub is a canned client for tests and offline runs. Responses are
// returned in order; after they run out the stub repeats the last one.
type Stub struct {
	Responses []json.RawMessage
	Err       error

	calls int
	// Prompts records what the stub was asked, for assertions in tests.
	Prompts []string
}

func (s *Stub) Name() string { return "stub" }

func (s *Stub) GenerateJSON(_ context.Context, prompt string) (json.RawMessage, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Responses) == 0 {
		return nil, errors.New("stub has no responses")
	}
	i := s.calls
	if i >= len(s.Responses) {
		i = len(s.Responses) - 1
	}
	s.calls++
	return s.Responses[i], nil
}
