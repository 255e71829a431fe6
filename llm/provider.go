// Package llm provides the inference clients.
//
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling

package llm

import "context"

// Provider defines the abstract interface for LLM providers.
//
// Complete performs exactly one synchronous request: a system prompt and a
// single user message in, the first text segment of the reply out. No retry,
// no streaming, no timeout beyond the transport default. A reply without any
// text segment is an error.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// Complete sends one completion request and returns the reply text.
	Complete(ctx context.Context, system, user string) (string, error)
}
