package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/raysh454/a11ylens/internal/analyzer"
	"github.com/raysh454/a11ylens/internal/assessor"
	"github.com/raysh454/a11ylens/internal/fetcher"
	"github.com/raysh454/a11ylens/internal/guidelines"
	"github.com/raysh454/a11ylens/internal/logging"
	"github.com/raysh454/a11ylens/internal/model"
	"github.com/raysh454/a11ylens/internal/webclient"
)

// Application is the runtime state container shared by the CLI, the TUI and
// the API server. It holds config, the logger and the wired Runner.
type Application struct {
	Config *Config
	Logger logging.Logger
	Runner *Runner

	closers []func() error
}

// NewApplication wires every component from cfg. A backend that cannot be
// constructed (typically a missing Firecrawl key) does not fail start-up:
// each run reports the construction error instead.
func NewApplication(cfg *Config, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	a := &Application{Config: cfg, Logger: logger}

	var an analyzer.Analyzer
	wc, err := webclient.NewWebClient(cfg.WebClient, logger)
	if err != nil {
		if errors.Is(err, webclient.ErrUnknownBackend) {
			return nil, err
		}
		logger.Warn("fetch backend unavailable",
			logging.Field{Key: "backend", Value: string(cfg.WebClient.Client)},
			logging.Field{Key: "error", Value: err})
		an = unavailableAnalyzer{err: err}
	} else {
		f, err := fetcher.New(cfg.Fetcher, wc, logger)
		if err != nil {
			_ = wc.Close()
			return nil, fmt.Errorf("new fetcher: %w", err)
		}
		an, err = analyzer.NewDefaultAnalyzer(f, assessor.NewAccessibilityAssessor(cfg.Assessor, logger), logger)
		if err != nil {
			_ = wc.Close()
			return nil, fmt.Errorf("new analyzer: %w", err)
		}
	}
	a.closers = append(a.closers, an.Close)

	// The reference page is public; it is always fetched directly.
	gwc, err := webclient.NewNetHTTPClient(cfg.WebClient, logger, nil)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("new guideline webclient: %w", err)
	}
	a.closers = append(a.closers, gwc.Close)
	src, err := guidelines.NewSource(cfg.Guidelines, gwc, logger)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("new guideline source: %w", err)
	}

	a.Runner, err = NewRunner(an, src, RunnerOptions{
		APIKeySet: cfg.APIKeySet(),
		Backend:   string(cfg.WebClient.Client),
	}, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	logger.Info("application ready",
		logging.Field{Key: "backend", Value: string(cfg.WebClient.Client)},
		logging.Field{Key: "firecrawl_api_key_set", Value: cfg.APIKeySet()})
	return a, nil
}

// Close releases every component in reverse construction order.
func (a *Application) Close() error {
	if a == nil {
		return errors.New("application is nil")
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// unavailableAnalyzer stands in when the fetch backend could not be built.
type unavailableAnalyzer struct{ err error }

func (u unavailableAnalyzer) Analyze(context.Context, string) (*model.AnalysisResult, error) {
	return nil, u.err
}

func (u unavailableAnalyzer) Health(context.Context) (string, error) { return "unavailable", u.err }

func (u unavailableAnalyzer) Close() error { return nil }
