// Package llm provides the language-model client used by the chat service.
package llm

import (
	"context"
)

// Client defines the interface for LLM providers.
type Client interface {
	// Complete sends a fully assembled prompt and returns the model's text.
	Complete(ctx context.Context, prompt string) (string, error)
	// Model names the underlying model, for response attribution.
	Model() string
}

// Config holds provider selection and credentials.
type Config struct {
	Provider   string
	Model      string
	APIKey     string
	MaxRetries int
}
