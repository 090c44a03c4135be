package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question about the course materials",
	Long: `Ask a one-shot question. Pass --session to continue an earlier
conversation; the session id is printed with every answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

// askSessionID is a flag for the ask command.
var askSessionID string

func init() {
	askCmd.Flags().StringVarP(&askSessionID, "session", "s", "", "Session id to continue")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	question := strings.Join(args, " ")

	answer, err := assistantService.Answer(cmd.Context(), question, askSessionID)
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	renderAnswer(cmd, answer)
	cmd.Println()
	cmd.Printf("Session: %s\n", answer.SessionID)
	return nil
}
