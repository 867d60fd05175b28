package assessor

import (
	"context"
	"fmt"

	"github.com/raysh454/a11ylens/internal/logging"
	"github.com/raysh454/a11ylens/internal/model"
	"github.com/raysh454/a11ylens/internal/webclient"
)

// AccessibilityAssessor tallies the five accessibility categories with
// goquery. It holds no per-run state and is safe for concurrent use.
type AccessibilityAssessor struct {
	cfg    Config
	logger logging.Logger
}

// NewAccessibilityAssessor constructs the assessor. A nil logger discards
// output; an empty RulesVersion takes the default.
func NewAccessibilityAssessor(cfg Config, logger logging.Logger) *AccessibilityAssessor {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if cfg.RulesVersion == "" {
		cfg.RulesVersion = DefaultRulesVersion
	}

	l := logger.With(logging.Field{Key: "component", Value: "accessibility-assessor"})
	l.Debug("accessibility assessor constructed", logging.Field{Key: "rules_version", Value: cfg.RulesVersion})

	return &AccessibilityAssessor{cfg: cfg, logger: l}
}

// RulesVersion reports the configured rule set version.
func (a *AccessibilityAssessor) RulesVersion() string {
	return a.cfg.RulesVersion
}

// AssessHTML parses html and tallies it. A body without an <html> element,
// including an empty one, fails with ErrNoRootElement.
func (a *AccessibilityAssessor) AssessHTML(ctx context.Context, html []byte, source string) (model.AccessibilityReport, error) {
	if err := ctx.Err(); err != nil {
		return model.AccessibilityReport{}, err
	}

	a.logger.Debug("tallying document",
		logging.Field{Key: "source", Value: source},
		logging.Field{Key: "size_bytes", Value: len(html)})

	report, err := TallyHTML(html)
	if err != nil {
		a.logger.Warn("tally failed",
			logging.Field{Key: "source", Value: source},
			logging.Field{Key: "error", Value: err})
		return model.AccessibilityReport{}, fmt.Errorf("tally %s: %w", source, err)
	}

	a.logger.Info("tally complete",
		logging.Field{Key: "source", Value: source},
		logging.Field{Key: "total_issues", Value: report.Total()})
	return report, nil
}

// AssessResponse delegates to AssessHTML with the response body.
func (a *AccessibilityAssessor) AssessResponse(ctx context.Context, resp *webclient.Response) (model.AccessibilityReport, error) {
	if resp == nil {
		return model.AccessibilityReport{}, ErrNilDocument
	}
	return a.AssessHTML(ctx, resp.Body, resp.URL())
}

// Close is a no-op; the assessor holds no resources.
func (a *AccessibilityAssessor) Close() error {
	a.logger.Debug("accessibility assessor closed")
	return nil
}

var _ Assessor = (*AccessibilityAssessor)(nil)
