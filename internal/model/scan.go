package model

import "time"

// AnalysisRequest is a request to analyze one page.
type AnalysisRequest struct {
	// URL is the page to analyze.
	URL string `json:"url" example:"https://example.com"`

	// Guidelines requests the WCAG reference links alongside the report.
	Guidelines bool `json:"guidelines" example:"true"`
}

// AnalysisResult is the outcome of fetching and tallying one page.
type AnalysisResult struct {
	// ID identifies this run in logs and API responses.
	ID string `json:"id" yaml:"id"`

	// URL is the normalized target that was requested.
	URL string `json:"url" yaml:"url"`

	// FinalURL is the URL the backend reports it ended on, if different.
	FinalURL string `json:"final_url,omitempty" yaml:"final_url,omitempty"`

	StatusCode int    `json:"status_code" yaml:"status_code"`
	Backend    string `json:"backend" yaml:"backend"`

	Report AccessibilityReport `json:"report" yaml:"report"`

	FetchedAt time.Time     `json:"fetched_at" yaml:"fetched_at"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration"`
}

// RunOutcome is what one user-triggered run hands to the presentation
// layer: either a result (and possibly guidelines) or a single error message.
type RunOutcome struct {
	Target     string          `json:"target" yaml:"target"`
	Result     *AnalysisResult `json:"result,omitempty" yaml:"result,omitempty"`
	Guidelines []Guideline     `json:"guidelines,omitempty" yaml:"guidelines,omitempty"`

	// ErrMessage is the user-facing message; Err keeps the wrapped cause.
	ErrMessage string `json:"error,omitempty" yaml:"error,omitempty"`
	Err        error  `json:"-" yaml:"-"`
}

// Failed reports whether the run ended in an error.
func (o *RunOutcome) Failed() bool {
	return o == nil || o.Err != nil
}
