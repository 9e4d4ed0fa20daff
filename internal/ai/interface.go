package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// Implementations return *UpstreamError for every provider failure so callers
// can branch on its Kind instead of on message text.
type LLMProvider interface {
	// GenerateText sends a rendered prompt and returns the raw model text.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Close releases client resources.
	Close()
}
