package driven

import "github.com/talenthive-labs/matchengine/internal/core/domain"

// SettingsStore loads engine configuration and notifies on changes.
type SettingsStore interface {
	// Load reads and validates the current settings.
	Load() (*domain.EngineSettings, error)

	// Watch registers a callback invoked with freshly loaded settings
	// whenever the underlying source changes. Invalid intermediate states
	// (e.g. a half-written file) are skipped, not delivered.
	Watch(onChange func(*domain.EngineSettings)) error

	// Close stops watching and releases resources.
	Close() error
}
