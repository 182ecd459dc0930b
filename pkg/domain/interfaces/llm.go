package interfaces

import (
	"context"
)

// LLMClient defines the interface for LLM text generation
type LLMClient interface {
	// GenerateText sends the prompt to the model and returns the raw
	// text of the completion
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Model returns the model identifier used for generation
	Model() string

	// IsConfigured reports whether the client holds valid credentials
	IsConfigured() bool
}
