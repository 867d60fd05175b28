package assessor

import (
	"context"

	"github.com/raysh454/a11ylens/internal/model"
	"github.com/raysh454/a11ylens/internal/webclient"
)

// Assessor is the cross-package contract for tallying accessibility issues.
// Implementations receive HTML bytes (or an already-fetched webclient.Response)
// and return an AccessibilityReport. The Assessor does NOT perform network I/O.
type Assessor interface {
	// AssessHTML parses html and tallies it. source is only used for logging.
	AssessHTML(ctx context.Context, html []byte, source string) (model.AccessibilityReport, error)

	// AssessResponse tallies resp.Body.
	AssessResponse(ctx context.Context, resp *webclient.Response) (model.AccessibilityReport, error)

	// Close releases any resources held by the assessor.
	Close() error
}
