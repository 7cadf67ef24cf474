package domain

import "strings"

// JobRequest is a structured job description submitted for analysis.
type JobRequest struct {
	Title       string
	Description string
	Budget      string
	Timeline    string
	Skills      []string
}

// Validate checks the request carries enough signal to analyse.
func (j JobRequest) Validate() error {
	if strings.TrimSpace(j.Title) == "" && strings.TrimSpace(j.Description) == "" {
		return ErrInvalidInput
	}
	return nil
}

// Text flattens the request into the free-text form used for keyword
// extraction and classification.
func (j JobRequest) Text() string {
	parts := make([]string, 0, 4)
	if j.Title != "" {
		parts = append(parts, j.Title)
	}
	if j.Description != "" {
		parts = append(parts, j.Description)
	}
	if j.Budget != "" {
		parts = append(parts, j.Budget)
	}
	if j.Timeline != "" {
		parts = append(parts, j.Timeline)
	}
	if len(j.Skills) > 0 {
		parts = append(parts, strings.Join(j.Skills, " "))
	}
	return strings.Join(parts, "\n")
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	// RequestID correlates the response with log entries.
	RequestID string

	// Provider is the name of the provider that answered, empty when the
	// clarification branch answered without contacting any provider.
	Provider string

	// Model is the model identifier used.
	Model string

	// Fallback is true when a lower-priority provider answered.
	Fallback bool

	// NeedsMoreInfo is true when the engine asked clarifying questions
	// instead of matching.
	NeedsMoreInfo bool

	// ClarifyingQuestions are the follow-up questions, at most three,
	// present only when NeedsMoreInfo is set.
	ClarifyingQuestions []string
}

// AssistantResponse is the outward contract of the engine. This is the only
// shape that crosses the subsystem boundary.
type AssistantResponse struct {
	// Content is the assistant text shown to the user.
	Content string

	// Matches are the ranked candidates, empty when no matching applied.
	Matches []Match

	// Metadata describes provenance of the response.
	Metadata ResponseMetadata
}

// ModelMatch is one match entry as reported by a model in the structured
// job-analysis contract. Model-reported scores are advisory; the
// deterministic scorer remains authoritative.
type ModelMatch struct {
	FreelancerID int64   `json:"freelancerId"`
	Score        float64 `json:"score"`
	Reasoning    string  `json:"reasoning"`
}

// JobAnalysis is the JSON object the job-analysis model contract requires:
// the model must return only this object, though adapters tolerate
// surrounding prose by extracting the first balanced JSON object.
type JobAnalysis struct {
	Analysis string       `json:"analysis"`
	Matches  []ModelMatch `json:"matches"`
}
