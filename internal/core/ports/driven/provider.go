// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
)

// Provider is the uniform interface over one external language-model backend.
//
// Implementations map their backend's transport and API failures onto the
// domain provider error taxonomy (domain.ErrProviderAuth,
// domain.ErrProviderRateLimited, domain.ErrProviderNetwork,
// domain.ErrMalformedResponse, domain.ErrProviderUnavailable) before
// returning, so the fallback chain never sees backend-specific errors.
//
// Implementations include:
//   - OpenAI (chat completions API)
//   - Anthropic (messages API)
//   - Ollama (local inference, chat and generate APIs)
type Provider interface {
	// Name returns the provider's stable identifier, e.g. "openai".
	Name() string

	// Model returns the model identifier this provider is configured with.
	Model() string

	// Configured reports whether the provider has the credentials it needs.
	// An unconfigured provider must be treated as unavailable without any
	// network call.
	Configured() bool

	// Chat conducts a multi-turn conversation and returns the model text.
	Chat(ctx context.Context, messages []ChatMessage) (string, error)

	// Generate produces a completion from a single prompt. Used by the
	// job-analysis path where the instruction and payload are one block.
	Generate(ctx context.Context, prompt string) (string, error)

	// Ping validates the backend is reachable via its lightweight health
	// endpoint. Callers bound it with a timeout.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message sent to a provider.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// MessagesFromTurns converts stored conversation turns into provider messages.
func MessagesFromTurns(turns []domain.Turn) []ChatMessage {
	msgs := make([]ChatMessage, len(turns))
	for i, t := range turns {
		msgs[i] = ChatMessage{Role: t.Role.String(), Content: t.Content}
	}
	return msgs
}
