package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/raysh454/a11ylens/internal/assessor"
	"github.com/raysh454/a11ylens/internal/fetcher"
	"github.com/raysh454/a11ylens/internal/logging"
	"github.com/raysh454/a11ylens/internal/model"
)

var ErrNilComponent = errors.New("analyzer: fetcher and assessor are required")

// DefaultAnalyzer composes a Fetcher and an Assessor. Every call is an
// isolated run; nothing is kept between calls.
type DefaultAnalyzer struct {
	fetcher  *fetcher.Fetcher
	assessor assessor.Assessor
	logger   logging.Logger
	now      func() time.Time
}

// NewDefaultAnalyzer wires the analyzer from already-constructed parts.
func NewDefaultAnalyzer(f *fetcher.Fetcher, a assessor.Assessor, logger logging.Logger) (*DefaultAnalyzer, error) {
	if f == nil || a == nil {
		return nil, ErrNilComponent
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	componentLogger := logger.With(logging.Field{Key: "component", Value: "analyzer"})
	componentLogger.Debug("created analyzer")

	return &DefaultAnalyzer{
		fetcher:  f,
		assessor: a,
		logger:   componentLogger,
		now:      time.Now,
	}, nil
}

// Analyze fetches url and tallies the returned document.
func (a *DefaultAnalyzer) Analyze(ctx context.Context, url string) (*model.AnalysisResult, error) {
	runID := uuid.New().String()
	l := a.logger.With(logging.Field{Key: "run_id", Value: runID})
	start := a.now()

	l.Info("analyzing", logging.Field{Key: "url", Value: url})

	reportStage(ctx, StageFetching)
	resp, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	reportStage(ctx, StageTallying)
	report, err := a.assessor.AssessResponse(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("assess: %w", err)
	}

	result := &model.AnalysisResult{
		ID:         runID,
		StatusCode: resp.StatusCode,
		Backend:    resp.Backend,
		Report:     report,
		FetchedAt:  resp.FetchedAt,
		Duration:   a.now().Sub(start),
	}
	if resp.Request != nil {
		result.URL = resp.Request.URL
	}
	if resp.FinalURL != "" && resp.FinalURL != result.URL {
		result.FinalURL = resp.FinalURL
	}

	l.Info("analysis complete",
		logging.Field{Key: "url", Value: result.URL},
		logging.Field{Key: "total_issues", Value: report.Total()},
		logging.Field{Key: "duration", Value: result.Duration.String()})
	return result, nil
}

// Health checks if the analyzer is ready to accept requests.
func (a *DefaultAnalyzer) Health(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	a.logger.Debug("health check")
	return "ok", nil
}

// Close releases the fetcher's web client and the assessor.
func (a *DefaultAnalyzer) Close() error {
	return errors.Join(a.fetcher.Close(), a.assessor.Close())
}

var _ Analyzer = (*DefaultAnalyzer)(nil)
