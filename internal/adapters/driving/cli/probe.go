package cli

import (
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check the availability of every provider in the fallback chain",
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		reports := engine.Assistant().ProbeProviders(cmd.Context())
		for _, r := range reports {
			status := "unavailable"
			switch {
			case r.Forced:
				status = "available (forced)"
			case r.Available:
				status = "available"
			case !r.Configured:
				status = "not configured"
			}
			cmd.Printf("%-12s priority=%d model=%-24s %s\n", r.Provider, r.Priority, r.Model, status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
