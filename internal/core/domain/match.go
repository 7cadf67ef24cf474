package domain

// ComponentScores breaks a match score into its weighted inputs, after
// clamping but before weighting. Useful for explaining a ranking.
type ComponentScores struct {
	Performance    float64
	Skills         float64
	Responsiveness float64
	Fairness       float64
}

// Match is one ranked freelancer result. Created fresh per request and never
// persisted by this subsystem.
type Match struct {
	// FreelancerID identifies the ranked candidate.
	FreelancerID int64

	// Score is the final blended score in [0,100].
	Score int

	// Reasons holds at least one human-readable explanation for the ranking.
	Reasons []string

	// Components are the clamped baseline inputs behind the score.
	Components ComponentScores
}
