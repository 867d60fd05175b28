// Package cli implements the a11ylens command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/raysh454/a11ylens/internal/app"
	"github.com/raysh454/a11ylens/internal/logging"
	"github.com/raysh454/a11ylens/internal/webclient"
)

const (
	ExitOK            = 0 // Success
	ExitAnalysisError = 1 // The page could not be analyzed
	ExitInvalidInput  = 2 // Bad arguments, flags or config
	ExitRuntimeError  = 3 // I/O or anything else
)

// version is overridden at build time via SetVersion.
var version = "dev"

// SetVersion sets the version reported by "a11ylens version".
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Options are the process streams the commands use.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
}

// state is shared by every command of one invocation.
type state struct {
	opts Options

	configFile string
	backend    string
	verbose    bool

	cfg    *app.Config
	logger logging.Logger
}

// NewRootCmd creates the root command.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	s := &state{opts: opts}

	cmd := &cobra.Command{
		Use:   "a11ylens",
		Short: "Web accessibility analyzer",
		Long: `a11ylens fetches a web page, runs five static accessibility checks
(missing alt text, low contrast, missing lang, empty links, missing labels)
and shows the counts, a bar chart and WCAG reference links.

Pages are fetched through Firecrawl by default; set FIRECRAWL_API_KEY in the
environment or a .env file. Use --backend nethttp to fetch directly.

Quick start:
  a11ylens analyze https://example.com
  a11ylens tui
  a11ylens serve --addr :8080`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load()
		},
	}
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ValidationError{Message: err.Error()}
	})

	// Global flags
	cmd.PersistentFlags().StringVar(&s.configFile, "config", "",
		"config file (default: ./a11ylens.yaml or $XDG_CONFIG_HOME/a11ylens/a11ylens.yaml)")
	cmd.PersistentFlags().StringVar(&s.backend, "backend", "",
		"fetch backend: "+strings.Join(webclient.ListBackends(), ", "))
	cmd.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false,
		"verbose logging to stderr")

	cmd.AddCommand(newAnalyzeCmd(s))
	cmd.AddCommand(newGuidelinesCmd(s))
	cmd.AddCommand(newStatusCmd(s))
	cmd.AddCommand(newCompareCmd(s))
	cmd.AddCommand(newServeCmd(s))
	cmd.AddCommand(newTUICmd(s))
	cmd.AddCommand(newConfigCmd(s))
	cmd.AddCommand(newVersionCmd(s))

	return cmd
}

// Execute runs the command tree against os.Args and returns the exit code.
func Execute() int {
	return Run(context.Background(), os.Args[1:], Options{})
}

// Run executes args and maps the result to an exit code.
func Run(ctx context.Context, args []string, opts Options) int {
	cmd := NewRootCmd(opts)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)

	var ae *AnalysisError
	if err != nil && !errors.As(err, &ae) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return HandleError(err)
}

// load reads config and applies the global flags on top.
func (s *state) load() error {
	cfg, err := app.LoadConfig(s.configFile)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("failed to load config: %v", err)}
	}
	if s.backend != "" {
		cfg.WebClient.Client = webclient.Client(strings.ToLower(s.backend))
	}
	if s.verbose {
		cfg.Log.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	s.cfg = cfg

	if cfg.Log.Verbose {
		s.logger = logging.NewLogger(s.opts.Stderr, "cli", true)
	} else {
		s.logger = logging.NopLogger{}
	}
	return nil
}

func (s *state) newApplication() (*app.Application, error) {
	a, err := app.NewApplication(s.cfg, s.logger)
	if err != nil {
		if errors.Is(err, webclient.ErrUnknownBackend) {
			return nil, &ValidationError{Message: err.Error()}
		}
		return nil, err
	}
	return a, nil
}

// HandleError determines the exit code for an error.
func HandleError(err error) int {
	if err == nil {
		return ExitOK
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ExitInvalidInput
	}
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ExitAnalysisError
	}
	return ExitRuntimeError
}

// ValidationError represents bad user input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AnalysisError reports one or more failed runs. The message has already
// been rendered to the output.
type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string {
	return e.Message
}

// exactArgs is cobra.ExactArgs with a ValidationError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &ValidationError{Message: err.Error()}
		}
		return nil
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newVersionCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  exactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(s.opts.Stdout, "a11ylens %s\n", version)
		},
	}
}
