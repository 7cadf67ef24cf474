package domain

// Freelancer is a candidate record considered for ranking. Candidates are
// sourced read-only from the repository collaborator; the engine never
// mutates them.
type Freelancer struct {
	// ID uniquely identifies the freelancer in the marketplace.
	ID int64

	// Profession is the headline trade, e.g. "web developer".
	Profession string

	// Skills is the set of skill terms attached to the profile.
	Skills []string

	// JobPerformance is the historical delivery score, expected in [0,100].
	JobPerformance float64

	// SkillsExperience is the verified-skill depth score, expected in [0,100].
	SkillsExperience float64

	// Responsiveness is the messaging responsiveness score, expected in [0,100].
	Responsiveness float64

	// FairnessScore is the marketplace fairness adjustment, expected in [0,100].
	FairnessScore float64

	// HourlyRate is the advertised rate in marketplace currency.
	HourlyRate float64

	// YearsOfExperience is total professional experience.
	YearsOfExperience int

	// Location is the freelancer's self-reported location.
	Location string
}

// User is the minimal account projection exposed by the repository
// collaborator for display purposes.
type User struct {
	DisplayName string
	Username    string
}
