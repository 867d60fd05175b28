package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raysh454/a11ylens/internal/app"
)

func newConfigCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print an annotated sample config file",
		Long: `Config prints a sample configuration. Save it as ./a11ylens.yaml or
$XDG_CONFIG_HOME/a11ylens/a11ylens.yaml.

Example:
  a11ylens config > a11ylens.yaml`,
		Args: exactArgs(0),
		// Runs without loading config so a broken file can be replaced.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(s.opts.Stdout, app.SampleConfig())
			return err
		},
	}
}
