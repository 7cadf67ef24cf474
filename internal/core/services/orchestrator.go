package services

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driven"
)

// ChainEntry pairs a constructed provider adapter with the settings it was
// built from. The settings carry priority and the probe override.
type ChainEntry struct {
	Provider driven.Provider
	Settings domain.ProviderSettings
}

// Orchestrator drives the fallback chain: providers in ascending priority
// order, tried strictly sequentially, first success wins.
//
// Failure policy per provider: unavailable (probe) providers are skipped
// without surfacing anything; auth, rate-limit, network, and
// malformed-response errors are logged and skipped; no provider is ever
// retried within one request. An exhausted chain returns
// domain.ErrNoProvidersAvailable and nothing else; callers never see a raw
// provider error.
type Orchestrator struct {
	chain  []ChainEntry
	prober *Prober
	logger *zap.Logger
}

// NewOrchestrator creates an orchestrator over the given entries. The chain
// order is fixed at construction: ascending Settings.Priority, provider kind
// as tie-break, deterministic across repeated calls.
func NewOrchestrator(entries []ChainEntry, prober *Prober, logger *zap.Logger) *Orchestrator {
	chain := make([]ChainEntry, len(entries))
	copy(chain, entries)
	sort.SliceStable(chain, func(i, j int) bool {
		if chain[i].Settings.Priority != chain[j].Settings.Priority {
			return chain[i].Settings.Priority < chain[j].Settings.Priority
		}
		return chain[i].Provider.Name() < chain[j].Provider.Name()
	})

	return &Orchestrator{chain: chain, prober: prober, logger: logger}
}

// Len returns the number of providers in the chain.
func (o *Orchestrator) Len() int {
	return len(o.chain)
}

// Execute walks the chain, invoking call on each available provider until
// one succeeds. The Fallback flag on the reply is set when the answering
// provider was not first in the chain.
func (o *Orchestrator) Execute(
	ctx context.Context,
	call func(ctx context.Context, p driven.Provider) (string, error),
) (*domain.ProviderReply, error) {
	for i, entry := range o.chain {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := entry.Provider.Name()

		if !o.prober.Probe(ctx, entry.Provider, entry.Settings) {
			// Not a failure worth surfacing; the provider was never tried.
			continue
		}

		text, err := call(ctx, entry.Provider)
		if err != nil {
			o.logFailure(name, err)
			continue
		}

		return &domain.ProviderReply{
			Text:     text,
			Provider: name,
			Model:    entry.Provider.Model(),
			Fallback: i > 0,
		}, nil
	}

	o.logger.Warn("provider chain exhausted", zap.Int("providers", len(o.chain)))
	return nil, domain.ErrNoProvidersAvailable
}

// Reports probes every provider in chain order and describes the outcome.
func (o *Orchestrator) Reports(ctx context.Context) []domain.ProbeReport {
	reports := make([]domain.ProbeReport, 0, len(o.chain))
	for _, entry := range o.chain {
		reports = append(reports, domain.ProbeReport{
			Provider:   entry.Provider.Name(),
			Model:      entry.Provider.Model(),
			Priority:   entry.Settings.Priority,
			Configured: entry.Provider.Configured(),
			Available:  o.prober.Probe(ctx, entry.Provider, entry.Settings),
			Forced:     entry.Settings.ForceAvailable,
		})
	}
	return reports
}

// Close releases every provider in the chain.
func (o *Orchestrator) Close() error {
	var firstErr error
	for _, entry := range o.chain {
		if err := entry.Provider.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// logFailure records a skipped provider. Auth failures log at error level
// since they indicate misconfiguration rather than transient trouble.
func (o *Orchestrator) logFailure(provider string, err error) {
	fields := []zap.Field{zap.String("provider", provider), zap.Error(err)}

	switch {
	case errors.Is(err, domain.ErrProviderAuth):
		o.logger.Error("provider rejected credentials, skipping", fields...)
	case errors.Is(err, domain.ErrProviderRateLimited):
		o.logger.Warn("provider rate limited, skipping", fields...)
	case errors.Is(err, domain.ErrMalformedResponse):
		o.logger.Warn("provider returned unparseable output, skipping for this request", fields...)
	case errors.Is(err, domain.ErrProviderNetwork):
		o.logger.Warn("provider network failure, skipping", fields...)
	default:
		o.logger.Warn("provider call failed, skipping", fields...)
	}
}
