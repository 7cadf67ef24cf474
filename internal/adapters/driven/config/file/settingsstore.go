// Package file provides the TOML-backed settings store with hot reload.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore reads engine configuration from a TOML file and watches it
// for changes. A missing file yields the default chain (local Ollama first,
// then the cloud providers), so the engine is usable out of the box.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// fileConfig is the TOML schema. Kept separate from the domain types so the
// file format can evolve without touching the core.
type fileConfig struct {
	LogJSON   bool           `toml:"log_json"`
	Debug     bool           `toml:"debug"`
	Providers []fileProvider `toml:"providers"`
}

// fileProvider is one provider entry in the TOML file.
type fileProvider struct {
	Kind              string `toml:"kind"`
	BaseURL           string `toml:"base_url"`
	APIKey            string `toml:"api_key"`
	Model             string `toml:"model"`
	Priority          int    `toml:"priority"`
	ForceAvailable    bool   `toml:"force_available"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
}

// NewSettingsStore creates a settings store for the given path.
// If path is empty, defaults to ~/.matchengine/config.toml.
func NewSettingsStore(path string, logger *zap.Logger) (*SettingsStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".matchengine", "config.toml")
	}

	return &SettingsStore{
		filePath: path,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Load reads and validates the current settings. A missing file returns the
// defaults rather than an error.
func (s *SettingsStore) Load() (*domain.EngineSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	settings := cfg.toDomain()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Watch starts a filesystem watcher on the config file's directory and
// invokes onChange with freshly loaded settings after each change. Loads
// that fail (half-written files, invalid TOML) are logged and skipped.
func (s *SettingsStore) Watch(onChange func(*domain.EngineSettings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files on save,
	// which drops a direct file watch.
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		watcher.Close()
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching config directory: %w", err)
	}

	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	go s.watchLoop(watcher, onChange)
	return nil
}

// watchLoop delivers reload events until the store is closed.
func (s *SettingsStore) watchLoop(watcher *fsnotify.Watcher, onChange func(*domain.EngineSettings)) {
	for {
		select {
		case <-s.done:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != s.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			settings, err := s.Load()
			if err != nil {
				s.logger.Warn("config change ignored, reload failed",
					zap.String("path", s.filePath), zap.Error(err))
				continue
			}
			s.logger.Info("config reloaded", zap.String("path", s.filePath))
			onChange(settings)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

// Close stops watching and releases resources.
func (s *SettingsStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.done:
	default:
		close(s.done)
	}
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// Path returns the config file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// DefaultSettings is the out-of-box chain: the free local model first, the
// cheap cloud model second, the most capable model last. Cloud providers
// stay unconfigured (and therefore unavailable) until keys are added.
func DefaultSettings() *domain.EngineSettings {
	return &domain.EngineSettings{
		Providers: []domain.ProviderSettings{
			{Kind: domain.ProviderOllama, Priority: 1},
			{Kind: domain.ProviderOpenAI, Priority: 2},
			{Kind: domain.ProviderAnthropic, Priority: 3},
		},
	}
}

// toDomain converts the file schema into engine settings.
func (c fileConfig) toDomain() *domain.EngineSettings {
	settings := &domain.EngineSettings{
		LogJSON: c.LogJSON,
		Debug:   c.Debug,
	}
	for _, p := range c.Providers {
		settings.Providers = append(settings.Providers, domain.ProviderSettings{
			Kind:              domain.ProviderKind(p.Kind),
			BaseURL:           p.BaseURL,
			APIKey:            p.APIKey,
			Model:             p.Model,
			Priority:          p.Priority,
			ForceAvailable:    p.ForceAvailable,
			RequestsPerMinute: p.RequestsPerMinute,
			Timeout:           time.Duration(p.TimeoutSeconds) * time.Second,
		})
	}
	return settings
}
