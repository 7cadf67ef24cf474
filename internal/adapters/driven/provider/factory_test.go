package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
)

func TestBuildChainOrdersByPriority(t *testing.T) {
	settings := &domain.EngineSettings{
		Providers: []domain.ProviderSettings{
			{Kind: domain.ProviderAnthropic, APIKey: "sk-ant", Priority: 3},
			{Kind: domain.ProviderOllama, Priority: 1},
			{Kind: domain.ProviderOpenAI, APIKey: "sk-oa", Priority: 2},
		},
	}

	entries, err := BuildChain(settings)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "ollama", entries[0].Provider.Name())
	assert.Equal(t, "openai", entries[1].Provider.Name())
	assert.Equal(t, "anthropic", entries[2].Provider.Name())
	assert.Equal(t, 1, entries[0].Settings.Priority)
}

func TestBuildChainAppliesModelOverride(t *testing.T) {
	settings := &domain.EngineSettings{
		Providers: []domain.ProviderSettings{
			{Kind: domain.ProviderOllama, Model: "mistral", Priority: 1},
		},
	}

	entries, err := BuildChain(settings)
	require.NoError(t, err)
	assert.Equal(t, "mistral", entries[0].Provider.Model())
}

func TestBuildChainRejectsInvalidSettings(t *testing.T) {
	_, err := BuildChain(&domain.EngineSettings{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = BuildChain(&domain.EngineSettings{
		Providers: []domain.ProviderSettings{{Kind: "mystery", Priority: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildChainUnconfiguredCloudProviderStillBuilds(t *testing.T) {
	// Missing keys make a provider unavailable at probe time, not a
	// construction error; the chain must still include it for reporting.
	settings := &domain.EngineSettings{
		Providers: []domain.ProviderSettings{
			{Kind: domain.ProviderOpenAI, Priority: 1},
		},
	}

	entries, err := BuildChain(settings)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Provider.Configured())
}
