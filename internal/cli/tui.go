package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/raysh454/a11ylens/internal/tui"
)

func newTUICmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive analyzer",
		Long: `TUI opens an interactive screen: type a URL, press enter, and the
counts, chart and guideline links appear once the run finishes.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(s.opts.Stdout) {
				return &ValidationError{Message: "tui requires an interactive terminal; use 'a11ylens analyze' instead"}
			}

			a, err := s.newApplication()
			if err != nil {
				return err
			}
			defer a.Close()

			p := tea.NewProgram(tui.New(cmd.Context(), a.Runner), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
