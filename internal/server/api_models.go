package server

import "github.com/raysh454/a11ylens/internal/model"

// AnalyzeRequest is the payload for POST /analyze. Guidelines defaults to
// true when omitted.
type AnalyzeRequest struct {
	URL        string `json:"url" example:"https://example.com"`
	Guidelines *bool  `json:"guidelines,omitempty" example:"true"`
}

func (r AnalyzeRequest) toModel() model.AnalysisRequest {
	g := true
	if r.Guidelines != nil {
		g = *r.Guidelines
	}
	return model.AnalysisRequest{URL: r.URL, Guidelines: g}
}

// StatusResponse reports the fetch backend and whether its key is present.
type StatusResponse struct {
	FirecrawlAPIKeySet bool   `json:"firecrawl_api_key_set" example:"true"`
	Message            string `json:"message" example:"Firecrawl API key is set"`
	Backend            string `json:"backend" example:"firecrawl"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}

// GuidelinesResponse lists WCAG reference links.
type GuidelinesResponse struct {
	Guidelines []model.Guideline `json:"guidelines"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"Error analyzing https://example.com: unexpected status 404"`
}
