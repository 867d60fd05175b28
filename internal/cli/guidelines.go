package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raysh454/a11ylens/internal/report"
)

func newGuidelinesCmd(s *state) *cobra.Command {
	var (
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "guidelines",
		Short: "List WCAG guideline links",
		Long: `Guidelines fetches the WCAG quick reference and prints the first
guideline titles with their links.

Example:
  a11ylens guidelines
  a11ylens guidelines --limit 3 --format json`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return &ValidationError{Message: err.Error()}
			}
			if limit < 0 {
				return &ValidationError{Message: "--limit cannot be negative"}
			}
			if limit > 0 {
				s.cfg.Guidelines.Limit = limit
			}

			a, err := s.newApplication()
			if err != nil {
				return err
			}
			defer a.Close()

			gs, err := a.Runner.Guidelines(cmd.Context())
			if err != nil {
				return fmt.Errorf("looking up guidelines: %w", err)
			}
			tty := isTerminal(s.opts.Stdout)
			return report.WriteGuidelines(s.opts.Stdout, f, gs, report.Options{Color: tty, Hyperlinks: tty})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0,
		"maximum number of guidelines (default from config, 5)")
	cmd.Flags().StringVarP(&format, "format", "f", "text",
		"output format: text, markdown, json or yaml")
	return cmd
}
