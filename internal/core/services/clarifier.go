package services

import (
	"fmt"
	"strings"
)

// maxClarifyingQuestions caps how many follow-ups a single turn may ask.
const maxClarifyingQuestions = 3

// clarifyRule pairs a topic's keyword group with the question asked when the
// topic is absent. Rules are evaluated in declaration order.
type clarifyRule struct {
	keywords []string
	question string
}

// clarifyRules is the fixed rule list: budget, timeline, skills, scope,
// location/language. Order is part of the contract; output is never scored
// or shuffled.
var clarifyRules = []clarifyRule{
	{budgetKeywords, "What is your budget for this project?"},
	{timelineKeywords, "When do you need this completed?"},
	{skillKeywords, "What specific skills or technologies should the freelancer have?"},
	{scopeKeywords, "What are the main deliverables you expect?"},
	{localeKeywords, "Do you have a preferred location, timezone, or working language?"},
}

// Clarifier produces deterministic follow-up questions from missing-topic
// detection. Stateless and safe for concurrent use.
type Clarifier struct{}

// NewClarifier creates a clarifier.
func NewClarifier() *Clarifier {
	return &Clarifier{}
}

// Questions returns up to maxClarifyingQuestions follow-ups, one per topic
// absent from the message, preserving rule order.
func (c *Clarifier) Questions(message string) []string {
	lower := strings.ToLower(message)

	var questions []string
	for _, rule := range clarifyRules {
		if containsAny(lower, rule.keywords) {
			continue
		}
		questions = append(questions, rule.question)
		if len(questions) == maxClarifyingQuestions {
			break
		}
	}
	return questions
}

// Prompt renders the clarification response text shown in place of a model
// answer when a turn is under-specified.
func (c *Clarifier) Prompt(questions []string) string {
	if len(questions) == 0 {
		return "Could you share a bit more detail about what you need?"
	}

	var b strings.Builder
	b.WriteString("I'd love to help you find the right freelancer! To give you the best matches, could you tell me:\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "\n%d. %s", i+1, q)
	}
	return b.String()
}
