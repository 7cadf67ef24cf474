package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driven"
)

// probeTimeout is the maximum time to wait for a provider health check.
const probeTimeout = 5 * time.Second

// Prober decides whether a provider is worth calling. A provider missing
// required credentials is reported unavailable without a network call; a
// ForceAvailable override in its settings reports it available the same way.
// The override exists so the fallback chain stays exercisable without live
// credentials, and it is always explicit configuration.
type Prober struct {
	timeout time.Duration
	logger  *zap.Logger
}

// NewProber creates a prober with the default probe timeout.
func NewProber(logger *zap.Logger) *Prober {
	return &Prober{timeout: probeTimeout, logger: logger}
}

// Probe reports whether the provider should be attempted.
func (p *Prober) Probe(ctx context.Context, provider driven.Provider, settings domain.ProviderSettings) bool {
	if settings.ForceAvailable {
		p.logger.Debug("probe skipped, provider forced available",
			zap.String("provider", provider.Name()))
		return true
	}

	if !provider.Configured() {
		p.logger.Debug("provider not configured, reported unavailable",
			zap.String("provider", provider.Name()))
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := provider.Ping(probeCtx); err != nil {
		p.logger.Debug("provider probe failed",
			zap.String("provider", provider.Name()),
			zap.Error(err))
		return false
	}
	return true
}
