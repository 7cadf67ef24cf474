package domain

import "time"

// ProviderKind identifies a language-model backend implementation.
type ProviderKind string

// Available provider kinds.
const (
	// ProviderOpenAI is the OpenAI cloud API.
	ProviderOpenAI ProviderKind = "openai"

	// ProviderAnthropic is the Anthropic cloud API.
	ProviderAnthropic ProviderKind = "anthropic"

	// ProviderOllama is a local Ollama instance.
	ProviderOllama ProviderKind = "ollama"
)

// IsValid returns true if the provider kind is recognised.
func (k ProviderKind) IsValid() bool {
	switch k {
	case ProviderOpenAI, ProviderAnthropic, ProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (k ProviderKind) RequiresAPIKey() bool {
	return k == ProviderOpenAI || k == ProviderAnthropic
}

// String returns the string representation.
func (k ProviderKind) String() string {
	return string(k)
}

// ProviderSettings configures one provider in the fallback chain.
// Settings are immutable after the chain is built; changing configuration
// means rebuilding the chain (the config store's reload hook does exactly that).
type ProviderSettings struct {
	// Kind selects the adapter implementation.
	Kind ProviderKind

	// BaseURL overrides the adapter's default API base URL.
	BaseURL string

	// APIKey authenticates cloud providers. Optional for local providers.
	APIKey string

	// Model is the model identifier sent with every request.
	Model string

	// Priority orders the fallback chain; lower values are tried first.
	Priority int

	// ForceAvailable skips the availability probe and reports the provider
	// as reachable. Development-only override; must be set explicitly in
	// configuration, never inferred from the environment.
	ForceAvailable bool

	// RequestsPerMinute throttles calls to this provider. Zero disables
	// client-side throttling.
	RequestsPerMinute int

	// Timeout bounds each provider HTTP request. Zero uses the adapter default.
	Timeout time.Duration
}

// IsConfigured returns true if the settings are complete enough to build an
// adapter: a valid kind, and an API key when the kind requires one.
func (s ProviderSettings) IsConfigured() bool {
	if !s.Kind.IsValid() {
		return false
	}
	if s.Kind.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// ProviderReply is the canonical successful result of the fallback chain.
type ProviderReply struct {
	// Text is the model output.
	Text string

	// Provider is the name of the provider that produced the reply.
	Provider string

	// Model is the model identifier used.
	Model string

	// Fallback is true when the reply came from any provider other than the
	// first in the priority order.
	Fallback bool
}

// ProbeReport describes one provider's availability at probe time.
type ProbeReport struct {
	Provider   string
	Model      string
	Priority   int
	Configured bool
	Available  bool
	Forced     bool
}
