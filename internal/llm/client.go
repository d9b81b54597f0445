// Package llm is the boundary to the text-generation collaborator. The
// core pipeline treats a client as a black box returning untrusted JSON;
// everything defensive about that JSON lives in internal/validate, not
// here.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"webforge/internal/logging"
)

// Client produces raw JSON for a prompt. Implementations may return
// anything a model emits: fenced, prose-wrapped, or broken payloads are all
// legal return values.
type Client interface {
	// GenerateJSON returns the model's raw response to the prompt.
	GenerateJSON(ctx context.Context, prompt string) (json.RawMessage, error)
	// Name identifies the provider for logs.
	Name() string
}

// Chain tries each client in order until one returns without error. A
// chain with every provider failing returns the joined errors; callers
// route that to the deterministic fallback suite.
type Chain struct {
	clients []Client
}

// NewChain builds a provider chain. Order is preference order.
func NewChain(clients ...Client) *Chain {
	return &Chain{clients: clients}
}

func (c *Chain) Name() string { return "chain" }

// GenerateJSON tries providers in order, logging each failure.
func (c *Chain) GenerateJSON(ctx context.Context, prompt string) (json.RawMessage, error) {
	log := logging.New("llm")
	var errs []error
	for _, client := range c.clients {
		raw, err := client.GenerateJSON(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		log.Warn("provider failed, trying next", "provider", client.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", client.Name(), err))
	}
	if len(errs) == 0 {
		return nil, errors.New("llm chain has no providers")
	}
	return nil, errors.Join(errs...)
}
