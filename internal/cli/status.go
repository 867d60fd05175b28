package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raysh454/a11ylens/internal/app"
)

type statusResult struct {
	FirecrawlAPIKeySet bool   `json:"firecrawl_api_key_set"`
	Message            string `json:"message"`
	Backend            string `json:"backend"`
	ConfigFile         string `json:"config_file,omitempty"`
}

func newStatusCmd(s *state) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the fetch backend and API key status",
		Long: `Status shows whether the Firecrawl API key is set and which fetch
backend is configured.

Example:
  a11ylens status
  a11ylens status --format json`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := statusResult{
				FirecrawlAPIKeySet: s.cfg.APIKeySet(),
				Message:            app.APIKeyStatusText(s.cfg.APIKeySet()),
				Backend:            string(s.cfg.WebClient.Client),
				ConfigFile:         s.cfg.ConfigFile,
			}
			switch format {
			case "json":
				enc := json.NewEncoder(s.opts.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			case "text", "":
				fmt.Fprintln(s.opts.Stdout, res.Message)
				fmt.Fprintf(s.opts.Stdout, "Backend: %s\n", res.Backend)
				if res.ConfigFile != "" {
					fmt.Fprintf(s.opts.Stdout, "Config file: %s\n", res.ConfigFile)
				}
				return nil
			}
			return &ValidationError{Message: fmt.Sprintf("unknown status format %q", format)}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text",
		"output format: text or json")
	return cmd
}
