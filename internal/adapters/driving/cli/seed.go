package cli

import (
	"github.com/spf13/cobra"

	"github.com/talenthive-labs/matchengine/internal/adapters/driven/storage/sqlite"
	"github.com/talenthive-labs/matchengine/internal/core/domain"
)

// sampleFreelancers is a small development roster covering the professions
// the classifier knows about.
var sampleFreelancers = []domain.Freelancer{
	{ID: 1, Profession: "web developer", Skills: []string{"React", "TypeScript", "Node.js"},
		JobPerformance: 92, SkillsExperience: 88, Responsiveness: 95, FairnessScore: 90,
		HourlyRate: 45, YearsOfExperience: 6, Location: "Berlin"},
	{ID: 2, Profession: "graphic designer", Skills: []string{"Figma", "Photoshop", "Illustrator"},
		JobPerformance: 85, SkillsExperience: 90, Responsiveness: 80, FairnessScore: 88,
		HourlyRate: 35, YearsOfExperience: 4, Location: "Lisbon"},
	{ID: 3, Profession: "backend developer", Skills: []string{"Go", "PostgreSQL", "Docker"},
		JobPerformance: 88, SkillsExperience: 92, Responsiveness: 75, FairnessScore: 85,
		HourlyRate: 55, YearsOfExperience: 8, Location: "Warsaw"},
	{ID: 4, Profession: "copywriter", Skills: []string{"SEO", "Content Strategy"},
		JobPerformance: 78, SkillsExperience: 70, Responsiveness: 98, FairnessScore: 92,
		HourlyRate: 25, YearsOfExperience: 3, Location: "Austin"},
	{ID: 5, Profession: "mobile developer", Skills: []string{"React Native", "Swift", "Kotlin"},
		JobPerformance: 90, SkillsExperience: 85, Responsiveness: 85, FairnessScore: 80,
		HourlyRate: 50, YearsOfExperience: 5, Location: "Toronto"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample freelancers into the local database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return err
		}
		defer store.Close()

		repo := store.FreelancerStore()
		for _, f := range sampleFreelancers {
			if err := repo.Put(cmd.Context(), f); err != nil {
				return err
			}
		}

		cmd.Printf("seeded %d freelancers into %s\n", len(sampleFreelancers), store.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
