package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talenthive-labs/matchengine/internal/adapters/driving/tui"
	"github.com/talenthive-labs/matchengine/internal/core/domain"
)

var chatUser string

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the marketplace assistant",
	Long: `Send one message to the assistant, or start an interactive chat
session when no message is given.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		// No message: interactive session.
		if len(args) == 0 {
			return tui.Run(engine.Assistant(), chatUser)
		}

		message := strings.Join(args, " ")
		resp, err := engine.Assistant().Chat(cmd.Context(), chatUser, message)
		if errors.Is(err, domain.ErrNoProvidersAvailable) {
			cmd.Println(domain.UnavailableMessage)
			return nil
		}
		if err != nil {
			return err
		}

		printResponse(cmd, resp)
		return nil
	},
}

// printResponse renders an assistant response for one-shot commands.
func printResponse(cmd *cobra.Command, resp *domain.AssistantResponse) {
	cmd.Println(resp.Content)

	if len(resp.Matches) > 0 {
		cmd.Println("\nTop matches:")
		for i, m := range resp.Matches {
			cmd.Printf("  %d. freelancer #%d (score %d)\n", i+1, m.FreelancerID, m.Score)
			for _, r := range m.Reasons {
				cmd.Printf("     - %s\n", r)
			}
		}
	}

	meta := resp.Metadata
	if meta.Provider != "" {
		cmd.Printf("\n[%s/%s", meta.Provider, meta.Model)
		if meta.Fallback {
			cmd.Printf(", fallback")
		}
		cmd.Println("]")
	}
}

func init() {
	chatCmd.Flags().StringVar(&chatUser, "user", "local", "user id for conversation context")
	rootCmd.AddCommand(chatCmd)
}
