// Package cli provides the cobra command tree for the matchengine binary.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Flags shared by all commands.
	configPath string
	dataDir    string
	logJSON    bool
	logDebug   bool

	rootCmd = &cobra.Command{
		Use:   "matchengine",
		Short: "AI-assistant orchestration and freelancer matching engine",
		Long: `matchengine runs the freelancer-marketplace assistant: it classifies
incoming messages, drives a prioritized chain of language-model providers
with automatic failover, and ranks freelancer candidates deterministically.`,
		SilenceUsage: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default ~/.matchengine/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "",
		"data directory (default ~/.matchengine/data)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false,
		"log in JSON format")
	rootCmd.PersistentFlags().BoolVar(&logDebug, "debug", false,
		"enable debug logging")
}
