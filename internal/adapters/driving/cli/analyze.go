package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
)

var analyzeJob domain.JobRequest

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a job description and rank freelancers for it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		resp, err := engine.Assistant().AnalyzeJob(cmd.Context(), analyzeJob)
		if errors.Is(err, domain.ErrNoProvidersAvailable) {
			cmd.Println(domain.UnavailableMessage)
			return nil
		}
		if err != nil {
			return err
		}

		if resp.Metadata.NeedsMoreInfo {
			cmd.Println(resp.Content)
			return nil
		}

		printResponse(cmd, resp)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeJob.Title, "title", "", "job title")
	analyzeCmd.Flags().StringVar(&analyzeJob.Description, "description", "", "job description")
	analyzeCmd.Flags().StringVar(&analyzeJob.Budget, "budget", "", "budget, e.g. \"$500\"")
	analyzeCmd.Flags().StringVar(&analyzeJob.Timeline, "timeline", "", "timeline, e.g. \"2 weeks\"")
	analyzeCmd.Flags().StringSliceVar(&analyzeJob.Skills, "skills", nil, "required skills")
	rootCmd.AddCommand(analyzeCmd)
}
