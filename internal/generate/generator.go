// Package generate sends strategy-built instructions to the text-generation
// capability and returns its raw output. No structural assumption is made
// about the result; parsing and repair belong to the recovery package.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/deck-generator/internal/llm"
)

// ErrEmptyOutput marks a response that was truncated to nothing. It is a
// distinct sentinel so callers can retry at a higher level instead of
// feeding empty input into recovery.
var ErrEmptyOutput = errors.New("generator returned empty output")

// GenerationError wraps a transport failure from the external capability.
// The underlying provider error is surfaced unchanged via Unwrap.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation error: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Generator produces raw deck text from generation instructions
type Generator struct {
	client llm.Client
	tier   llm.ModelTier
}

// New creates a Generator backed by the given LLM client
func New(client llm.Client) *Generator {
	return &Generator{client: client, tier: llm.TierStandard}
}

// WithTier returns a Generator that uses the given model tier
func (g *Generator) WithTier(tier llm.ModelTier) *Generator {
	return &Generator{client: g.client, tier: tier}
}

// Generate sends the instruction to the text capability and returns the raw
// output, which is expected but not guaranteed to be a serialized document.
func (g *Generator) Generate(ctx context.Context, instruction string) (string, error) {
	if strings.TrimSpace(instruction) == "" {
		return "", &GenerationError{Message: "instruction is empty"}
	}

	raw, err := g.client.GenerateJSON(ctx, instruction, llm.Options{Tier: g.tier})
	if err != nil {
		return "", &GenerationError{Message: "text capability call failed", Cause: err}
	}

	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyOutput
	}

	return raw, nil
}
