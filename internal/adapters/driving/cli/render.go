package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
)

var (
	sourcesHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	countStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))
)

// renderAnswer prints the answer text followed by its sources.
func renderAnswer(cmd *cobra.Command, answer *domain.Answer) {
	cmd.Println(answer.Text)

	if len(answer.Sources) == 0 {
		return
	}

	cmd.Println()
	cmd.Println(sourcesHeaderStyle.Render("Sources:"))
	for _, src := range answer.Sources {
		line := "  " + src.Label
		if src.Link != "" {
			line += " (" + src.Link + ")"
		}
		cmd.Println(sourceStyle.Render(line))
	}
}
