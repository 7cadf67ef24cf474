// Package driving provides interfaces for primary (inbound) adapters such as
// the CLI and TUI. Surrounding web/admin surfaces consume the same port.
package driving

import (
	"context"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
)

// Assistant is the engine's inbound port: free-text chat, structured job
// analysis, and an availability probe for operational tooling.
type Assistant interface {
	// Chat handles one free-text user message: classification, optional
	// clarification, provider fallback, matching, and context upkeep.
	Chat(ctx context.Context, userID, message string) (*domain.AssistantResponse, error)

	// AnalyzeJob handles a structured job description through the
	// JSON-contract model path plus the deterministic ranking.
	AnalyzeJob(ctx context.Context, job domain.JobRequest) (*domain.AssistantResponse, error)

	// ProbeProviders reports the availability of every provider in the
	// chain, in priority order.
	ProbeProviders(ctx context.Context) []domain.ProbeReport
}
