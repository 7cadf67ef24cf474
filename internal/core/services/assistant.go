package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driven"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driving"
)

// Ensure AssistantService implements the interface.
var _ driving.Assistant = (*AssistantService)(nil)

// chatSystemPrompt frames every conversational provider call.
const chatSystemPrompt = `You are the assistant of a freelancer marketplace. ` +
	`You help clients describe their projects and find freelancers. ` +
	`Be concise and concrete. Never invent freelancer names or profiles; ` +
	`matching is done separately by the platform.`

// jobAnalysisPromptFmt instructs the model for the structured job-analysis
// path. The model must answer with only a JSON object; adapters still
// tolerate surrounding prose by extracting the first balanced object.
const jobAnalysisPromptFmt = `You are a freelancer-matching analyst. Analyse the job description below and assess which of the listed freelancers fit it.

Respond with ONLY a JSON object of this exact shape, no other text:
{"analysis": "<two or three sentences on what the job needs>", "matches": [{"freelancerId": <id>, "score": <0-100>, "reasoning": "<one sentence>"}]}

Job description:
%s

Freelancers:
%s`

// AssistantService implements the driving.Assistant port: classification,
// clarification, provider fallback, deterministic matching, and context
// upkeep for every inbound request.
type AssistantService struct {
	orchestrator *Orchestrator
	classifier   *Classifier
	clarifier    *Clarifier
	scorer       *Scorer
	contexts     driven.ContextStore
	freelancers  driven.FreelancerRepository
	logger       *zap.Logger
}

// NewAssistantService creates an assistant service.
func NewAssistantService(
	orchestrator *Orchestrator,
	contexts driven.ContextStore,
	freelancers driven.FreelancerRepository,
	logger *zap.Logger,
) *AssistantService {
	return &AssistantService{
		orchestrator: orchestrator,
		classifier:   NewClassifier(),
		clarifier:    NewClarifier(),
		scorer:       NewScorer(),
		contexts:     contexts,
		freelancers:  freelancers,
		logger:       logger,
	}
}

// Chat handles one free-text user message.
//
// The context window is appended only after a definitive outcome: a
// clarification turn or a provider success. On chain exhaustion nothing is
// appended and the typed domain.ErrNoProvidersAvailable is returned; callers
// render their own safe unavailable message, never a provider error.
func (s *AssistantService) Chat(ctx context.Context, userID, message string) (*domain.AssistantResponse, error) {
	message = strings.TrimSpace(message)
	if userID == "" || message == "" {
		return nil, fmt.Errorf("%w: user id and message are required", domain.ErrInvalidInput)
	}

	requestID := uuid.NewString()
	log := s.logger.With(zap.String("request_id", requestID), zap.String("user_id", userID))

	priorTurns := s.contexts.Len(userID)
	isFreelancerQuery := s.classifier.IsFreelancerQuery(message)

	log.Debug("chat classified",
		zap.Bool("freelancer_query", isFreelancerQuery),
		zap.Int("prior_turns", priorTurns))

	// Clarification branch: deterministic, no provider contacted, no
	// matches computed. The trigger is deliberately aggressive and does not
	// depend on freelancer intent; a short or topic-free message is asked
	// for detail regardless of what it is about.
	if s.classifier.NeedsClarification(message, priorTurns) {
		questions := s.clarifier.Questions(message)
		content := s.clarifier.Prompt(questions)

		s.contexts.Append(userID, domain.RoleUser, message)
		s.contexts.Append(userID, domain.RoleAssistant, content)

		log.Info("asked for clarification", zap.Int("questions", len(questions)))
		return &domain.AssistantResponse{
			Content: content,
			Matches: []domain.Match{},
			Metadata: domain.ResponseMetadata{
				RequestID:           requestID,
				NeedsMoreInfo:       true,
				ClarifyingQuestions: questions,
			},
		}, nil
	}

	messages := s.buildChatMessages(userID, message)
	reply, err := s.orchestrator.Execute(ctx, func(ctx context.Context, p driven.Provider) (string, error) {
		return p.Chat(ctx, messages)
	})
	if err != nil {
		return nil, err
	}

	var matches []domain.Match
	if isFreelancerQuery {
		matches = s.rankForQuery(ctx, log, s.classifier.ExtractKeywords(message))
	}

	s.contexts.Append(userID, domain.RoleUser, message)
	s.contexts.Append(userID, domain.RoleAssistant, reply.Text)

	log.Info("chat answered",
		zap.String("provider", reply.Provider),
		zap.Bool("fallback", reply.Fallback),
		zap.Int("matches", len(matches)))

	return &domain.AssistantResponse{
		Content: reply.Text,
		Matches: matches,
		Metadata: domain.ResponseMetadata{
			RequestID: requestID,
			Provider:  reply.Provider,
			Model:     reply.Model,
			Fallback:  reply.Fallback,
		},
	}, nil
}

// AnalyzeJob handles a structured job description. The deterministic scorer
// is authoritative for the returned ranking; model reasoning is attached to
// a match only when the model scored the same candidate.
func (s *AssistantService) AnalyzeJob(ctx context.Context, job domain.JobRequest) (*domain.AssistantResponse, error) {
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("%w: job title or description is required", domain.ErrInvalidInput)
	}

	requestID := uuid.NewString()
	log := s.logger.With(zap.String("request_id", requestID))

	text := job.Text()

	// Job analysis has no conversation, so only the content checks apply.
	if s.classifier.NeedsClarification(text, domain.MaxContextTurns) {
		questions := s.clarifier.Questions(text)
		log.Info("job description under-specified", zap.Int("questions", len(questions)))
		return &domain.AssistantResponse{
			Content: s.clarifier.Prompt(questions),
			Matches: []domain.Match{},
			Metadata: domain.ResponseMetadata{
				RequestID:           requestID,
				NeedsMoreInfo:       true,
				ClarifyingQuestions: questions,
			},
		}, nil
	}

	candidates, err := s.freelancers.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load freelancers: %w", err)
	}

	prompt := fmt.Sprintf(jobAnalysisPromptFmt, text, candidateRoster(candidates))

	var analysis domain.JobAnalysis
	reply, err := s.orchestrator.Execute(ctx, func(ctx context.Context, p driven.Provider) (string, error) {
		raw, err := p.Generate(ctx, prompt)
		if err != nil {
			return "", err
		}
		parsed, err := parseJobAnalysis(raw)
		if err != nil {
			return "", err
		}
		analysis = *parsed
		return raw, nil
	})
	if err != nil {
		return nil, err
	}

	keywords := s.classifier.ExtractKeywords(text)
	matches := s.scorer.Rank(candidates, keywords)
	attachModelReasoning(matches, analysis.Matches)

	content := analysis.Analysis
	if content == "" {
		content = "Here are the freelancers that best fit your job description."
	}

	log.Info("job analysed",
		zap.String("provider", reply.Provider),
		zap.Bool("fallback", reply.Fallback),
		zap.Int("matches", len(matches)))

	return &domain.AssistantResponse{
		Content: content,
		Matches: matches,
		Metadata: domain.ResponseMetadata{
			RequestID: requestID,
			Provider:  reply.Provider,
			Model:     reply.Model,
			Fallback:  reply.Fallback,
		},
	}, nil
}

// ProbeProviders reports every provider's availability in chain order.
func (s *AssistantService) ProbeProviders(ctx context.Context) []domain.ProbeReport {
	return s.orchestrator.Reports(ctx)
}

// buildChatMessages assembles the provider message list: system prompt,
// context window, then the new user message.
func (s *AssistantService) buildChatMessages(userID, message string) []driven.ChatMessage {
	history := s.contexts.History(userID)

	messages := make([]driven.ChatMessage, 0, len(history)+2)
	messages = append(messages, driven.ChatMessage{
		Role:    domain.RoleSystem.String(),
		Content: chatSystemPrompt,
	})
	messages = append(messages, driven.MessagesFromTurns(history)...)
	messages = append(messages, driven.ChatMessage{
		Role:    domain.RoleUser.String(),
		Content: message,
	})
	return messages
}

// rankForQuery retrieves candidates and ranks them. Retrieval failure
// degrades to an empty match list rather than failing the whole response;
// the model text is still useful on its own.
func (s *AssistantService) rankForQuery(ctx context.Context, log *zap.Logger, keywords []string) []domain.Match {
	candidates, err := s.freelancers.All(ctx)
	if err != nil {
		log.Warn("freelancer retrieval failed, returning no matches", zap.Error(err))
		return nil
	}
	return s.scorer.Rank(candidates, keywords)
}

// parseJobAnalysis extracts and decodes the model's JSON object, mapping any
// failure to the malformed-response error so the chain advances.
func parseJobAnalysis(raw string) (*domain.JobAnalysis, error) {
	obj, ok := extractJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in model output", domain.ErrMalformedResponse)
	}

	var analysis domain.JobAnalysis
	if err := json.Unmarshal([]byte(obj), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return &analysis, nil
}

// attachModelReasoning appends the model's reasoning string to matches the
// deterministic ranking also produced.
func attachModelReasoning(matches []domain.Match, modelMatches []domain.ModelMatch) {
	if len(modelMatches) == 0 {
		return
	}
	reasoning := make(map[int64]string, len(modelMatches))
	for _, m := range modelMatches {
		if strings.TrimSpace(m.Reasoning) != "" {
			reasoning[m.FreelancerID] = m.Reasoning
		}
	}
	for i := range matches {
		if r, ok := reasoning[matches[i].FreelancerID]; ok {
			matches[i].Reasons = append(matches[i].Reasons, r)
		}
	}
}

// candidateRoster renders a compact freelancer list for the model prompt.
func candidateRoster(candidates []domain.Freelancer) string {
	if len(candidates) == 0 {
		return "(none on record)"
	}
	var b strings.Builder
	for _, f := range candidates {
		fmt.Fprintf(&b, "- id=%d %s, skills: %s, %d years, $%.0f/h, %s\n",
			f.ID, f.Profession, strings.Join(f.Skills, "/"),
			f.YearsOfExperience, f.HourlyRate, f.Location)
	}
	return strings.TrimRight(b.String(), "\n")
}
