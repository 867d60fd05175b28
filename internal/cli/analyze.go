package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raysh454/a11ylens/internal/model"
	"github.com/raysh454/a11ylens/internal/report"
)

type analyzeFlags struct {
	format       string
	noGuidelines bool
	output       string
	noColor      bool
	chartWidth   int
}

func newAnalyzeCmd(s *state) *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze one page",
		Long: `Analyze fetches the page, counts accessibility issues in five categories
and prints the counts, a bar chart and up to five WCAG guideline links.

Example:
  a11ylens analyze https://example.com
  a11ylens analyze example.com --format json --no-guidelines
  a11ylens analyze https://example.com --format markdown --output report.md`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, s, f, args[0])
		},
	}
	cmd.Flags().StringVarP(&f.format, "format", "f", "text",
		"output format: text, markdown, json or yaml")
	cmd.Flags().BoolVar(&f.noGuidelines, "no-guidelines", false,
		"skip the WCAG guideline lookup")
	cmd.Flags().StringVarP(&f.output, "output", "o", "",
		"write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false,
		"disable colors and terminal hyperlinks")
	cmd.Flags().IntVar(&f.chartWidth, "chart-width", report.DefaultChartWidth,
		"length of the longest bar in the text chart")
	return cmd
}

func runAnalyze(cmd *cobra.Command, s *state, f *analyzeFlags, target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return &ValidationError{Message: "url must not be empty"}
	}
	format, err := report.ParseFormat(f.format)
	if err != nil {
		return &ValidationError{Message: err.Error()}
	}

	a, err := s.newApplication()
	if err != nil {
		return err
	}
	defer a.Close()

	out := a.Runner.RunRequest(cmd.Context(), model.AnalysisRequest{
		URL:        target,
		Guidelines: !f.noGuidelines,
	}, nil)

	w, closeOut, err := s.outputWriter(f.output)
	if err != nil {
		return err
	}
	defer closeOut()

	tty := f.output == "" && !f.noColor && isTerminal(w)
	rw, err := report.NewWriter(format, w, report.Options{
		Color:         tty,
		Hyperlinks:    tty,
		ChartWidth:    f.chartWidth,
		ShowAPIStatus: true,
		APIKeyStatus:  a.Runner.APIKeyStatus(),
	})
	if err != nil {
		return &ValidationError{Message: err.Error()}
	}
	if _, err := rw.Write(out); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if out.Failed() {
		return &AnalysisError{Message: out.ErrMessage}
	}
	return nil
}

// outputWriter returns stdout or a created file.
func (s *state) outputWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return s.opts.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}
