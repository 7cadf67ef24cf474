package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talenthive-labs/matchengine/internal/adapters/driven/storage/memory"
	"github.com/talenthive-labs/matchengine/internal/core/domain"
)

// fixture bundles the assistant with its collaborators for inspection.
type fixture struct {
	assistant *AssistantService
	contexts  *memory.ContextStore
	repo      *memory.FreelancerStore
}

// newFixture wires an assistant over stub providers and in-memory stores.
func newFixture(t *testing.T, entries ...ChainEntry) *fixture {
	t.Helper()

	contexts := memory.NewContextStore()
	repo := memory.NewFreelancerStore()

	repo.Put(domain.Freelancer{
		ID: 1, Profession: "developer", Skills: []string{"React", "TypeScript"},
		JobPerformance: 90, SkillsExperience: 88, Responsiveness: 92,
		FairnessScore: 85, YearsOfExperience: 6, Location: "Berlin",
	})
	repo.Put(domain.Freelancer{
		ID: 2, Profession: "designer", Skills: []string{"Figma"},
		JobPerformance: 80, SkillsExperience: 75, Responsiveness: 70,
		FairnessScore: 80, YearsOfExperience: 2, Location: "Lisbon",
	})
	repo.Put(domain.Freelancer{
		ID: 3, Profession: "copywriter", Skills: []string{"SEO"},
		JobPerformance: 70, SkillsExperience: 65, Responsiveness: 95,
		FairnessScore: 90, YearsOfExperience: 4, Location: "Austin",
	})

	log := zap.NewNop()
	orchestrator := NewOrchestrator(entries, NewProber(log), log)
	return &fixture{
		assistant: NewAssistantService(orchestrator, contexts, repo, log),
		contexts:  contexts,
		repo:      repo,
	}
}

// fillContext gets a user past the early-conversation clarification window.
func (f *fixture) fillContext(userID string, turns int) {
	for i := 0; i < turns; i += 2 {
		f.contexts.Append(userID, domain.RoleUser, "earlier question")
		f.contexts.Append(userID, domain.RoleAssistant, "earlier answer")
	}
}

const completeQuery = "I need a React developer, budget $500, deadline 2 weeks, must have React skills"

func TestChatRejectsEmptyInput(t *testing.T) {
	f := newFixture(t, entry(&stubProvider{name: "openai", configured: true, chatText: "hi"}, 1))

	_, err := f.assistant.Chat(context.Background(), "u1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.assistant.Chat(context.Background(), "", "hello")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChatClarificationBranch(t *testing.T) {
	p := &stubProvider{name: "openai", configured: true, chatText: "never used"}
	f := newFixture(t, entry(p, 1))

	// First contact, freelancer intent, nothing specified: the engine asks
	// instead of matching, without contacting any provider.
	resp, err := f.assistant.Chat(context.Background(), "u1", "I need a developer")
	require.NoError(t, err)

	assert.True(t, resp.Metadata.NeedsMoreInfo)
	assert.Empty(t, resp.Matches, "clarification branch never computes matches")
	assert.Empty(t, resp.Metadata.Provider)
	require.NotEmpty(t, resp.Metadata.ClarifyingQuestions)
	assert.LessOrEqual(t, len(resp.Metadata.ClarifyingQuestions), 3)
	assert.Equal(t, "What is your budget for this project?", resp.Metadata.ClarifyingQuestions[0])

	assert.Zero(t, p.chatCalls)
	assert.Zero(t, p.pingCalls)

	// The clarification turn is a definitive outcome and lands in context.
	assert.Equal(t, 2, f.contexts.Len("u1"))
}

func TestChatAnswersWithMatches(t *testing.T) {
	p := &stubProvider{name: "openai", model: "gpt-4o-mini", configured: true, chatText: "Here are some options."}
	f := newFixture(t, entry(p, 1))
	f.fillContext("u1", 4)

	resp, err := f.assistant.Chat(context.Background(), "u1", completeQuery)
	require.NoError(t, err)

	assert.Equal(t, "Here are some options.", resp.Content)
	assert.False(t, resp.Metadata.NeedsMoreInfo)
	assert.Equal(t, "openai", resp.Metadata.Provider)
	assert.Equal(t, "gpt-4o-mini", resp.Metadata.Model)
	assert.False(t, resp.Metadata.Fallback)
	assert.NotEmpty(t, resp.Metadata.RequestID)

	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, int64(1), resp.Matches[0].FreelancerID, "React developer ranks first")
	for _, m := range resp.Matches {
		assert.GreaterOrEqual(t, m.Score, 0)
		assert.LessOrEqual(t, m.Score, 100)
		assert.NotEmpty(t, m.Reasons)
	}

	// User and assistant turns appended after the definitive success.
	assert.Equal(t, 6, f.contexts.Len("u1"))
}

// fullTopicQuestion has no freelancer intent but covers the budget, timeline,
// and skill topics with enough tokens, so it flows straight to a provider.
const fullTopicQuestion = "how does payment work here each day, and does my experience matter"

func TestChatNonFreelancerMessageSkipsMatching(t *testing.T) {
	p := &stubProvider{name: "openai", configured: true, chatText: "Payments settle weekly."}
	f := newFixture(t, entry(p, 1))

	resp, err := f.assistant.Chat(context.Background(), "u1", fullTopicQuestion)
	require.NoError(t, err)

	assert.Equal(t, "Payments settle weekly.", resp.Content)
	assert.False(t, resp.Metadata.NeedsMoreInfo)
	assert.Empty(t, resp.Matches)
	assert.Equal(t, 1, p.chatCalls)
}

func TestChatUnderSpecifiedMessageClarifiedRegardlessOfIntent(t *testing.T) {
	p := &stubProvider{name: "openai", configured: true, chatText: "never used"}
	f := newFixture(t, entry(p, 1))
	f.fillContext("u1", 8)

	// No freelancer intent at all, but too short to act on: the engine asks
	// for detail instead of contacting any provider.
	resp, err := f.assistant.Chat(context.Background(), "u1", "thanks so much")
	require.NoError(t, err)

	assert.True(t, resp.Metadata.NeedsMoreInfo)
	assert.NotEmpty(t, resp.Metadata.ClarifyingQuestions)
	assert.Empty(t, resp.Matches)
	assert.Zero(t, p.chatCalls)
	assert.Zero(t, p.genCalls)
}

func TestChatChainExhaustedLeavesContextUntouched(t *testing.T) {
	p := &stubProvider{name: "openai", configured: false}
	f := newFixture(t, entry(p, 1))
	f.fillContext("u1", 4)

	_, err := f.assistant.Chat(context.Background(), "u1", completeQuery)
	require.ErrorIs(t, err, domain.ErrNoProvidersAvailable)

	// No partial update: neither the user turn nor an assistant turn landed.
	assert.Equal(t, 4, f.contexts.Len("u1"))
}

func TestChatUsesFallbackProvider(t *testing.T) {
	p1 := &stubProvider{name: "ollama", configured: true, pingErr: assert.AnError}
	p2 := &stubProvider{name: "anthropic", model: "claude", configured: true, chatText: "from claude"}
	f := newFixture(t, entry(p1, 1), entry(p2, 2))

	resp, err := f.assistant.Chat(context.Background(), "u1", fullTopicQuestion)
	require.NoError(t, err)

	assert.Equal(t, "from claude", resp.Content)
	assert.Equal(t, "anthropic", resp.Metadata.Provider)
	assert.True(t, resp.Metadata.Fallback)
}

func TestAnalyzeJobRejectsEmptyRequest(t *testing.T) {
	f := newFixture(t, entry(&stubProvider{name: "openai", configured: true}, 1))

	_, err := f.assistant.AnalyzeJob(context.Background(), domain.JobRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnalyzeJobUnderSpecifiedAsksQuestions(t *testing.T) {
	p := &stubProvider{name: "openai", configured: true, genText: "never used"}
	f := newFixture(t, entry(p, 1))

	resp, err := f.assistant.AnalyzeJob(context.Background(), domain.JobRequest{Title: "need help"})
	require.NoError(t, err)

	assert.True(t, resp.Metadata.NeedsMoreInfo)
	assert.Empty(t, resp.Matches)
	assert.Zero(t, p.genCalls, "no provider contacted for an under-specified job")
}

const analysisJSON = `{"analysis": "You need a React specialist.", "matches": [{"freelancerId": 1, "score": 95, "reasoning": "Strong React background"}]}`

func TestAnalyzeJobEndToEnd(t *testing.T) {
	p := &stubProvider{name: "openai", model: "gpt-4o-mini", configured: true, genText: analysisJSON}
	f := newFixture(t, entry(p, 1))

	resp, err := f.assistant.AnalyzeJob(context.Background(), domain.JobRequest{
		Description: "Need a React developer for $500 budget due in 2 weeks with 5 years experience",
	})
	require.NoError(t, err)

	assert.False(t, resp.Metadata.NeedsMoreInfo)
	assert.Equal(t, "You need a React specialist.", resp.Content)
	assert.Equal(t, "openai", resp.Metadata.Provider)

	require.NotEmpty(t, resp.Matches)
	top := resp.Matches[0]
	assert.Equal(t, int64(1), top.FreelancerID, "highest React overlap wins")
	assert.GreaterOrEqual(t, top.Score, 0)
	assert.LessOrEqual(t, top.Score, 100)
	assert.Contains(t, top.Reasons, "Strong React background", "model reasoning attached to the matching candidate")
}

func TestAnalyzeJobToleratesProseAroundJSON(t *testing.T) {
	p := &stubProvider{name: "openai", configured: true, genText: "Sure thing! " + analysisJSON + " Let me know if you need more."}
	f := newFixture(t, entry(p, 1))

	resp, err := f.assistant.AnalyzeJob(context.Background(), domain.JobRequest{
		Description: "Need a React developer for $500 budget due in 2 weeks with 5 years experience",
	})
	require.NoError(t, err)
	assert.Equal(t, "You need a React specialist.", resp.Content)
}

func TestAnalyzeJobMalformedResponseFallsToNextProvider(t *testing.T) {
	p1 := &stubProvider{name: "openai", configured: true, genText: "Sure! {not json"}
	p2 := &stubProvider{name: "anthropic", model: "claude", configured: true, genText: analysisJSON}
	f := newFixture(t, entry(p1, 1), entry(p2, 2))

	resp, err := f.assistant.AnalyzeJob(context.Background(), domain.JobRequest{
		Description: "Need a React developer for $500 budget due in 2 weeks with 5 years experience",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, p1.genCalls, "malformed provider tried once, not retried")
	assert.Equal(t, 1, p2.genCalls)
	assert.Equal(t, "anthropic", resp.Metadata.Provider)
	assert.True(t, resp.Metadata.Fallback)
	assert.Equal(t, "You need a React specialist.", resp.Content)
}

func TestProbeProvidersReportsChainOrder(t *testing.T) {
	p1 := &stubProvider{name: "ollama", model: "llama3.2", configured: true, pingErr: assert.AnError}
	p2 := &stubProvider{name: "openai", model: "gpt-4o-mini", configured: true}
	f := newFixture(t, entry(p2, 2), entry(p1, 1))

	reports := f.assistant.ProbeProviders(context.Background())
	require.Len(t, reports, 2)

	assert.Equal(t, "ollama", reports[0].Provider)
	assert.False(t, reports[0].Available)
	assert.Equal(t, "openai", reports[1].Provider)
	assert.True(t, reports[1].Available)
}
