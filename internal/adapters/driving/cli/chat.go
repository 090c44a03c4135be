package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question-and-answer session",
	Long: `Start a REPL that keeps conversation context between questions,
so follow-ups like "tell me more about that" work. Type "exit" or
press Ctrl+D to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		cmd.Println("Studyhall chat. Ask about your courses; type \"exit\" to leave.")
		cmd.Println()
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	sessionID := ""

	for {
		if interactive {
			cmd.Print(promptStyle.Render("> "))
		}
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, err := assistantService.Answer(cmd.Context(), question, sessionID)
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			continue
		}
		sessionID = answer.SessionID

		renderAnswer(cmd, answer)
		cmd.Println()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if interactive {
		cmd.Println("Goodbye.")
	}
	return nil
}
