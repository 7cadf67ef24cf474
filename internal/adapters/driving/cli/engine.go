package cli

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/talenthive-labs/matchengine/internal/adapters/driven/config/file"
	"github.com/talenthive-labs/matchengine/internal/adapters/driven/provider"
	"github.com/talenthive-labs/matchengine/internal/adapters/driven/storage/memory"
	"github.com/talenthive-labs/matchengine/internal/adapters/driven/storage/sqlite"
	"github.com/talenthive-labs/matchengine/internal/core/domain"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driving"
	"github.com/talenthive-labs/matchengine/internal/core/services"
	"github.com/talenthive-labs/matchengine/internal/logger"
)

// engine wires the full assistant stack for CLI commands. Hot reload swaps
// the orchestrator (and assistant) when the config file changes, which only
// matters for long-running sessions like the interactive chat.
type engine struct {
	mu        sync.RWMutex
	assistant driving.Assistant

	orchestrator *services.Orchestrator
	settings     *file.SettingsStore
	store        *sqlite.Store
	contexts     *memory.ContextStore
	log          *zap.Logger
}

// newEngine assembles the engine from configuration.
func newEngine() (*engine, error) {
	bootstrapLog, err := logger.New(logJSON, logDebug)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	settingsStore, err := file.NewSettingsStore(configPath, bootstrapLog)
	if err != nil {
		return nil, err
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return nil, err
	}

	// Flags win over file settings for logging.
	log, err := logger.New(logJSON || settings.LogJSON, logDebug || settings.Debug)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, err
	}

	e := &engine{
		settings: settingsStore,
		store:    store,
		contexts: memory.NewContextStore(),
		log:      log,
	}

	if err := e.rebuild(settings); err != nil {
		store.Close()
		return nil, err
	}

	if err := settingsStore.Watch(func(s *domain.EngineSettings) {
		if err := e.rebuild(s); err != nil {
			log.Warn("config reload rejected", zap.Error(err))
		}
	}); err != nil {
		log.Warn("config watching disabled", zap.Error(err))
	}

	return e, nil
}

// rebuild constructs a fresh provider chain and assistant from settings and
// swaps them in. The context store and repository survive reloads.
func (e *engine) rebuild(settings *domain.EngineSettings) error {
	entries, err := provider.BuildChain(settings)
	if err != nil {
		return err
	}

	orchestrator := services.NewOrchestrator(entries, services.NewProber(e.log), e.log)
	assistant := services.NewAssistantService(orchestrator, e.contexts, e.store.FreelancerStore(), e.log)

	e.mu.Lock()
	old := e.orchestrator
	e.orchestrator = orchestrator
	e.assistant = assistant
	e.mu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

// Assistant returns the current assistant.
func (e *engine) Assistant() driving.Assistant {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.assistant
}

// Close releases all engine resources.
func (e *engine) Close() {
	e.settings.Close()
	e.mu.Lock()
	if e.orchestrator != nil {
		e.orchestrator.Close()
	}
	e.mu.Unlock()
	e.store.Close()
	_ = e.log.Sync()
}
