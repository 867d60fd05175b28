package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raysh454/a11ylens/internal/model"
	"github.com/raysh454/a11ylens/internal/report"
)

type compareResult struct {
	Base   *model.RunOutcome      `json:"base"`
	Head   *model.RunOutcome      `json:"head"`
	Deltas []report.CategoryDelta `json:"deltas,omitempty"`
}

func newCompareCmd(s *state) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "compare <url-a> <url-b>",
		Short: "Analyze two pages and diff their reports",
		Long: `Compare analyzes both pages and prints a line diff of their text
reports followed by the per-category change.

Example:
  a11ylens compare https://example.com/v1 https://example.com/v2
  a11ylens compare a.example b.example --format json`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return &ValidationError{Message: fmt.Sprintf("unknown compare format %q", format)}
			}
			for _, u := range args {
				if strings.TrimSpace(u) == "" {
					return &ValidationError{Message: "url must not be empty"}
				}
			}

			a, err := s.newApplication()
			if err != nil {
				return err
			}
			defer a.Close()

			base := a.Runner.RunRequest(cmd.Context(), model.AnalysisRequest{URL: strings.TrimSpace(args[0])}, nil)
			head := a.Runner.RunRequest(cmd.Context(), model.AnalysisRequest{URL: strings.TrimSpace(args[1])}, nil)

			res := compareResult{Base: base, Head: head}
			if !base.Failed() && !head.Failed() {
				res.Deltas = report.CompareReports(base.Result.Report, head.Result.Report)
			}

			if format == "json" {
				enc := json.NewEncoder(s.opts.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				writeCompareText(s, args[0], args[1], res)
			}

			var failed []string
			for _, out := range []*model.RunOutcome{base, head} {
				if out.Failed() {
					failed = append(failed, out.ErrMessage)
				}
			}
			if len(failed) > 0 {
				return &AnalysisError{Message: strings.Join(failed, "; ")}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text",
		"output format: text or json")
	return cmd
}

func writeCompareText(s *state, a, b string, res compareResult) {
	w := s.opts.Stdout
	fmt.Fprintf(w, "--- %s\n+++ %s\n", a, b)
	fmt.Fprint(w, report.Diff(res.Base, res.Head))
	if len(res.Deltas) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-18s %6s %6s %6s\n", "Category", "Base", "Head", "Delta")
	for _, d := range res.Deltas {
		fmt.Fprintf(w, "%-18s %6d %6d %+6d\n", d.Category.Title(), d.Base, d.Head, d.Delta)
	}
}
