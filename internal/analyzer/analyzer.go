package analyzer

import (
	"context"

	"github.com/raysh454/a11ylens/internal/model"
)

// Analyzer fetches one page and tallies its accessibility issues.
type Analyzer interface {
	// Analyze runs fetch, parse and tally for url.
	Analyze(ctx context.Context, url string) (*model.AnalysisResult, error)

	// Health checks if the analyzer is ready to accept requests.
	Health(ctx context.Context) (string, error)

	// Close releases resources held by the analyzer.
	Close() error
}
