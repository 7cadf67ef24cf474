package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
)

// Baseline weights over a candidate's stored performance metrics. They sum
// to 1.0 so a perfect candidate scores exactly 100.
const (
	weightPerformance    = 0.50
	weightSkills         = 0.20
	weightResponsiveness = 0.15
	weightFairness       = 0.15
)

// Blend weights applied when the query carried extractable keywords and at
// least one candidate term overlapped them.
const (
	weightContent        = 0.7
	weightBaselineInMix  = 0.3
	experienceHighlight  = 5 // years that earn an explicit reason
	maxMatchesReturned   = 3
	contentScoreFullMark = 100.0
)

// Scorer computes the deterministic weighted ranking of freelancer
// candidates. It is pure: no I/O, no shared mutable state, safe to call from
// any number of goroutines.
type Scorer struct{}

// NewScorer creates a scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Baseline computes the provider-independent weighted score from the
// candidate's stored metrics. Each component is clamped to [0,100] first, so
// the result is always within [0,100] regardless of stored values.
func (s *Scorer) Baseline(f domain.Freelancer) (float64, domain.ComponentScores) {
	comp := domain.ComponentScores{
		Performance:    clamp(f.JobPerformance, 0, 100),
		Skills:         clamp(f.SkillsExperience, 0, 100),
		Responsiveness: clamp(f.Responsiveness, 0, 100),
		Fairness:       clamp(f.FairnessScore, 0, 100),
	}
	baseline := comp.Performance*weightPerformance +
		comp.Skills*weightSkills +
		comp.Responsiveness*weightResponsiveness +
		comp.Fairness*weightFairness
	return baseline, comp
}

// ContentScore measures lexical overlap between the candidate's profession
// and skill terms and the query keywords: the fraction of candidate terms
// that overlap, scaled to 0-100. Overlap is substring containment either
// way, case-insensitive. The second return is the overlapping terms.
func (s *Scorer) ContentScore(f domain.Freelancer, keywords []string) (float64, []string) {
	terms := candidateTerms(f)
	if len(terms) == 0 || len(keywords) == 0 {
		return 0, nil
	}

	var matched []string
	for _, term := range terms {
		if overlapsAny(term, keywords) {
			matched = append(matched, term)
		}
	}
	if len(matched) == 0 {
		return 0, nil
	}
	return contentScoreFullMark * float64(len(matched)) / float64(len(terms)), matched
}

// Rank scores every candidate and returns the top results sorted by
// descending score, ties broken by ascending freelancer id. At most
// maxMatchesReturned results are returned, each with at least one reason.
func (s *Scorer) Rank(candidates []domain.Freelancer, keywords []string) []domain.Match {
	matches := make([]domain.Match, 0, len(candidates))
	for _, f := range candidates {
		matches = append(matches, s.scoreOne(f, keywords))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].FreelancerID < matches[j].FreelancerID
	})

	if len(matches) > maxMatchesReturned {
		matches = matches[:maxMatchesReturned]
	}
	return matches
}

// scoreOne builds the match for a single candidate.
func (s *Scorer) scoreOne(f domain.Freelancer, keywords []string) domain.Match {
	baseline, comp := s.Baseline(f)
	content, overlap := s.ContentScore(f, keywords)

	final := baseline
	if len(overlap) > 0 {
		final = content*weightContent + baseline*weightBaselineInMix
	}
	score := int(math.Round(clamp(final, 0, 100)))

	return domain.Match{
		FreelancerID: f.ID,
		Score:        score,
		Reasons:      s.reasons(f, keywords, overlap),
		Components:   comp,
	}
}

// reasons produces the human-readable explanation list. Always non-empty.
func (s *Scorer) reasons(f domain.Freelancer, keywords, overlap []string) []string {
	var reasons []string

	if f.Profession != "" && overlapsAny(strings.ToLower(f.Profession), keywords) {
		reasons = append(reasons, fmt.Sprintf("Profession %q matches your request", f.Profession))
	}

	var skillHits []string
	for _, term := range overlap {
		if !strings.EqualFold(term, f.Profession) {
			skillHits = append(skillHits, term)
		}
	}
	if len(skillHits) > 0 {
		reasons = append(reasons, fmt.Sprintf("Skills match: %s", strings.Join(skillHits, ", ")))
	}

	if f.YearsOfExperience >= experienceHighlight {
		reasons = append(reasons, fmt.Sprintf("%d+ years of experience", experienceHighlight))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Strong overall marketplace track record")
	}
	return reasons
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// candidateTerms collects the candidate's lower-cased profession and skill
// terms, deduplicated.
func candidateTerms(f domain.Freelancer) []string {
	var terms []string
	seen := make(map[string]bool)
	add := func(t string) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		terms = append(terms, t)
	}

	for _, part := range strings.Fields(f.Profession) {
		add(part)
	}
	for _, skill := range f.Skills {
		add(skill)
	}
	return terms
}

// overlapsAny reports whether the lower-cased term lexically overlaps any of
// the keywords: either string containing the other counts.
func overlapsAny(term string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(term, kw) || strings.Contains(kw, term) {
			return true
		}
	}
	return false
}
