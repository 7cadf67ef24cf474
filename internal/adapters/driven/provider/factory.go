// Package provider provides factory functions for building the provider
// fallback chain from engine settings.
package provider

import (
	"fmt"

	"github.com/talenthive-labs/matchengine/internal/adapters/driven/provider/anthropic"
	"github.com/talenthive-labs/matchengine/internal/adapters/driven/provider/ollama"
	"github.com/talenthive-labs/matchengine/internal/adapters/driven/provider/openai"
	"github.com/talenthive-labs/matchengine/internal/core/domain"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driven"
	"github.com/talenthive-labs/matchengine/internal/core/services"
)

// BuildChain constructs one adapter per configured provider and pairs it
// with its settings for the orchestrator. Settings order is irrelevant; the
// orchestrator sorts by priority. Unknown kinds fail construction rather
// than being skipped silently.
func BuildChain(settings *domain.EngineSettings) ([]services.ChainEntry, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	entries := make([]services.ChainEntry, 0, len(settings.Providers))
	for _, ps := range settings.SortedProviders() {
		adapter, err := build(ps)
		if err != nil {
			return nil, err
		}
		entries = append(entries, services.ChainEntry{Provider: adapter, Settings: ps})
	}
	return entries, nil
}

// build creates the adapter for one provider's settings.
func build(ps domain.ProviderSettings) (driven.Provider, error) {
	switch ps.Kind {
	case domain.ProviderOpenAI:
		return openai.New(openai.Config{
			APIKey:            ps.APIKey,
			BaseURL:           ps.BaseURL,
			Model:             ps.Model,
			Timeout:           ps.Timeout,
			RequestsPerMinute: ps.RequestsPerMinute,
		}), nil

	case domain.ProviderAnthropic:
		return anthropic.New(anthropic.Config{
			APIKey:            ps.APIKey,
			BaseURL:           ps.BaseURL,
			Model:             ps.Model,
			Timeout:           ps.Timeout,
			RequestsPerMinute: ps.RequestsPerMinute,
		}), nil

	case domain.ProviderOllama:
		return ollama.New(ollama.Config{
			BaseURL:           ps.BaseURL,
			Model:             ps.Model,
			Timeout:           ps.Timeout,
			RequestsPerMinute: ps.RequestsPerMinute,
		}), nil

	default:
		return nil, fmt.Errorf("%w: unsupported provider kind %q", domain.ErrInvalidInput, ps.Kind)
	}
}
