package services

import "strings"

// Keyword groups driving intent detection. Membership is substring match on
// the lower-cased message, not token match: a keyword inside a longer word
// still counts ("developers" matches "developer").
//
// The clarification trigger below is intentionally aggressive: a message
// missing any single one of the budget/timeline/skill groups is asked for
// more detail. Tune here, not in configuration.
var (
	// professionKeywords cover the trades the marketplace lists.
	professionKeywords = []string{
		"developer", "designer", "writer", "marketer", "photographer",
		"translator", "accountant", "engineer", "consultant", "architect",
		"illustrator", "animator", "copywriter", "videographer", "tutor",
	}

	// hireKeywords are the action verbs of a freelancer search.
	hireKeywords = []string{
		"hire", "need", "looking for", "find me", "search for", "seeking",
		"recruit", "help me with", "get someone",
	}

	// marketplaceKeywords are domain nouns that signal marketplace intent.
	marketplaceKeywords = []string{
		"freelancer", "freelance", "marketplace", "skills", "gig",
		"contractor", "portfolio", "project",
	}

	// budgetKeywords signal the budget topic is covered.
	budgetKeywords = []string{
		"budget", "$", "price", "pay", "rate", "cost", "usd", "eur",
		"affordable", "cheap",
	}

	// timelineKeywords signal the timeline topic is covered.
	timelineKeywords = []string{
		"deadline", "timeline", "week", "month", "day", "urgent", "asap",
		"due", "by end of",
	}

	// skillKeywords signal the skill topic is covered.
	skillKeywords = []string{
		"skill", "experience", "expert", "years", "react", "angular", "vue",
		"javascript", "typescript", "python", "golang", "java", "php",
		"node", "wordpress", "seo", "figma", "photoshop", "excel",
	}

	// scopeKeywords signal the scope topic is covered.
	scopeKeywords = []string{
		"scope", "deliverable", "milestone", "feature", "page", "screen",
		"requirement", "spec",
	}

	// localeKeywords signal the location/language topic is covered.
	localeKeywords = []string{
		"remote", "on-site", "onsite", "location", "timezone", "time zone",
		"language", "english", "local",
	}
)

// minTokensBeforeClarification is the token count below which a message is
// considered under-specified.
const minTokensBeforeClarification = 10

// earlyConversationTurns is how many stored turns count as "early" in a
// conversation; freelancer queries this early are always asked for detail.
const earlyConversationTurns = 4

// queryStopwords are dropped during keyword extraction for content scoring.
var queryStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "for": true,
	"with": true, "to": true, "in": true, "on": true, "of": true, "is": true,
	"am": true, "are": true, "i": true, "me": true, "my": true, "we": true,
	"you": true, "need": true, "want": true, "who": true, "can": true,
	"some": true, "someone": true, "please": true, "hire": true, "find": true,
	"looking": true, "help": true, "that": true, "this": true, "have": true,
}

// Classifier makes the two intent decisions for an inbound message and
// extracts the keyword set fed to the match scorer. It is stateless and safe
// for concurrent use.
type Classifier struct{}

// NewClassifier creates a classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// IsFreelancerQuery returns true if the message reads like a freelancer
// search: any profession, hire verb, or marketplace noun appears in it.
func (c *Classifier) IsFreelancerQuery(message string) bool {
	lower := strings.ToLower(message)
	return containsAny(lower, professionKeywords) ||
		containsAny(lower, hireKeywords) ||
		containsAny(lower, marketplaceKeywords)
}

// NeedsClarification returns true when the message is too thin to match on.
// priorTurns is the number of turns already stored for the user; structured
// job analysis, which has no conversation, passes a value past the early
// window so only the content checks apply.
//
// Triggers, any one sufficient:
//  1. the conversation is still early and the message is a freelancer query;
//  2. the message has fewer than minTokensBeforeClarification tokens;
//  3. any of the budget, timeline, or skill topics is entirely absent.
func (c *Classifier) NeedsClarification(message string, priorTurns int) bool {
	lower := strings.ToLower(message)

	if priorTurns < earlyConversationTurns && c.IsFreelancerQuery(message) {
		return true
	}
	if len(strings.Fields(message)) < minTokensBeforeClarification {
		return true
	}
	if !containsAny(lower, budgetKeywords) ||
		!containsAny(lower, timelineKeywords) ||
		!containsAny(lower, skillKeywords) {
		return true
	}
	return false
}

// ExtractKeywords returns the lower-cased content terms of the message used
// for lexical overlap scoring: every non-stopword token plus any profession
// or skill vocabulary hit. Order is first occurrence; duplicates removed.
func (c *Classifier) ExtractKeywords(message string) []string {
	lower := strings.ToLower(message)

	var keywords []string
	seen := make(map[string]bool)
	add := func(term string) {
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		keywords = append(keywords, term)
	}

	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, ".,;:!?()[]\"'")
		if len(tok) < 2 || queryStopwords[tok] {
			continue
		}
		add(tok)
	}

	// Vocabulary hits catch terms embedded in longer words that
	// tokenisation misses ("react" inside "reactjs").
	for _, vocab := range [][]string{professionKeywords, skillKeywords} {
		for _, term := range vocab {
			if strings.Contains(lower, term) {
				add(term)
			}
		}
	}

	return keywords
}

// containsAny reports whether any keyword occurs in the lower-cased text.
func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
