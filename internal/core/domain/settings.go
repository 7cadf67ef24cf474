package domain

import (
	"fmt"
	"sort"
)

// EngineSettings is the full engine configuration as loaded from the config
// store. The provider list defines the fallback chain.
type EngineSettings struct {
	// Providers configures the fallback chain, ordered by Priority ascending
	// once normalised.
	Providers []ProviderSettings

	// LogJSON switches log output to JSON encoding.
	LogJSON bool

	// Debug enables debug-level logging.
	Debug bool
}

// Validate checks the settings describe a usable chain.
func (s *EngineSettings) Validate() error {
	if len(s.Providers) == 0 {
		return fmt.Errorf("%w: at least one provider is required", ErrInvalidInput)
	}
	seen := make(map[ProviderKind]bool, len(s.Providers))
	for _, p := range s.Providers {
		if !p.Kind.IsValid() {
			return fmt.Errorf("%w: unknown provider kind %q", ErrInvalidInput, p.Kind)
		}
		if seen[p.Kind] {
			return fmt.Errorf("%w: duplicate provider %q", ErrInvalidInput, p.Kind)
		}
		seen[p.Kind] = true
	}
	return nil
}

// SortedProviders returns the provider settings in chain order: ascending
// priority, name as a deterministic tie-break.
func (s *EngineSettings) SortedProviders() []ProviderSettings {
	out := make([]ProviderSettings, len(s.Providers))
	copy(out, s.Providers)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}
