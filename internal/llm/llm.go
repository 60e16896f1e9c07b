// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm wraps the inference endpoint behind a small client
// interface so the ranking and summarization stages can share one
// implementation and tests can supply mocks.
package llm

import (
	"context"
	"errors"
)

// ErrTimeout marks a generation call that exceeded its per-call
// deadline. Callers distinguish it from transport failures with
// errors.Is.
var ErrTimeout = errors.New("llm: request timed out")

// Options controls a single generation call.
type Options struct {
	// SystemPrompt is prepended to the user prompt when non-empty.
	SystemPrompt string

	// Temperature is the sampling temperature.
	Temperature float64

	// MaxTokens caps the generated output length.
	MaxTokens int

	// JSONMode asks the endpoint for constrained JSON output when it
	// supports that.
	JSONMode bool
}

// Client generates text from a prompt. Implementations must surface
// timeouts as ErrTimeout and other transport failures as distinct
// errors.
type Client interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}
