package analyzer_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/raysh454/a11ylens/internal/analyzer"
	"github.com/raysh454/a11ylens/internal/assessor"
	"github.com/raysh454/a11ylens/internal/fetcher"
	"github.com/raysh454/a11ylens/internal/logging"
	"github.com/raysh454/a11ylens/internal/model"
	"github.com/raysh454/a11ylens/internal/testutil"
	"github.com/raysh454/a11ylens/internal/webclient"
)

func newAnalyzer(t *testing.T, wc webclient.WebClient) *analyzer.DefaultAnalyzer {
	t.Helper()
	logger := &testutil.DummyLogger{}
	f, err := fetcher.New(fetcher.Config{}, wc, logger)
	if err != nil {
		t.Fatalf("fetcher.New: %v", err)
	}
	a, err := analyzer.NewDefaultAnalyzer(f, assessor.NewAccessibilityAssessor(assessor.DefaultConfig(), logger), logger)
	if err != nil {
		t.Fatalf("NewDefaultAnalyzer: %v", err)
	}
	return a
}

// TestNewDefaultAnalyzer_RequiresParts verifies nil collaborators are rejected
func TestNewDefaultAnalyzer_RequiresParts(t *testing.T) {
	t.Parallel()
	if _, err := analyzer.NewDefaultAnalyzer(nil, nil, nil); !errors.Is(err, analyzer.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

// TestDefaultAnalyzer_Analyze verifies that Analyze can fetch and analyze a URL
func TestDefaultAnalyzer_Analyze(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, `<html lang="en"><body><img src="a.png"><a href="/"></a><input></body></html>`)
	}))
	defer ts.Close()

	wc, err := webclient.NewNetHTTPClient(webclient.Config{}, logging.NopLogger{}, ts.Client())
	if err != nil {
		t.Fatalf("NewNetHTTPClient: %v", err)
	}
	a := newAnalyzer(t, wc)
	defer a.Close()

	result, err := a.Analyze(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if _, err := uuid.Parse(result.ID); err != nil {
		t.Errorf("expected uuid run id, got %q", result.ID)
	}
	if result.URL != ts.URL {
		t.Errorf("expected url %q, got %q", ts.URL, result.URL)
	}
	if result.FinalURL != "" {
		t.Errorf("expected no final url without redirect, got %q", result.FinalURL)
	}
	if result.StatusCode != 200 || result.Backend != "nethttp" {
		t.Errorf("unexpected metadata: %+v", result)
	}

	want := map[model.Category]int{
		model.CategoryMissingAltText: 1,
		model.CategoryLowContrast:    0,
		model.CategoryMissingLang:    0,
		model.CategoryEmptyLinks:     1,
		model.CategoryMissingLabels:  1,
	}
	for c, n := range want {
		if got := result.Report.Count(c); got != n {
			t.Errorf("%s: expected %d, got %d", c, n, got)
		}
	}
}

func TestDefaultAnalyzer_Analyze_DistinctRunIDs(t *testing.T) {
	t.Parallel()
	wc := &testutil.DummyWebClient{Pages: map[string]string{"https://example.com": `<html lang="en"></html>`}}
	a := newAnalyzer(t, wc)

	first, err := a.Analyze(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, err := a.Analyze(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if first.ID == second.ID {
		t.Error("expected a fresh run id per analysis")
	}
	if first.Report.Total() != 0 {
		t.Errorf("expected clean report, got %v", first.Report.Counts())
	}
}

func TestDefaultAnalyzer_Analyze_FetchError(t *testing.T) {
	t.Parallel()
	wc := &testutil.DummyWebClient{FailURLs: map[string]bool{"https://example.com/down": true}}
	a := newAnalyzer(t, wc)

	_, err := a.Analyze(context.Background(), "https://example.com/down")
	if !errors.Is(err, testutil.ErrDummyFetch) {
		t.Fatalf("expected ErrDummyFetch, got %v", err)
	}
}

// TestDefaultAnalyzer_Analyze_ScrapedErrorPage verifies a page Firecrawl
// scraped with a 404 status is still tallied
func TestDefaultAnalyzer_Analyze_ScrapedErrorPage(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":{"html":"<html><body><img src=\"404.png\"><a href=\"/\"></a></body></html>","metadata":{"statusCode":404,"sourceURL":"https://example.com/missing"}}}`)
	}))
	defer ts.Close()

	wc, err := webclient.NewFirecrawlClient(webclient.Config{
		Firecrawl: webclient.FirecrawlConfig{APIKey: "fc-test", BaseURL: ts.URL},
	}, logging.NopLogger{}, ts.Client())
	if err != nil {
		t.Fatalf("NewFirecrawlClient: %v", err)
	}
	a := newAnalyzer(t, wc)
	defer a.Close()

	result, err := a.Analyze(context.Background(), "https://example.com/missing")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.StatusCode != 404 || result.Backend != "firecrawl" {
		t.Errorf("unexpected metadata: status %d backend %q", result.StatusCode, result.Backend)
	}
	want := map[model.Category]int{
		model.CategoryMissingAltText: 1,
		model.CategoryMissingLang:    1,
		model.CategoryEmptyLinks:     1,
	}
	for c, n := range want {
		if got := result.Report.Count(c); got != n {
			t.Errorf("%s: expected %d, got %d", c, n, got)
		}
	}
}

func TestDefaultAnalyzer_Analyze_NoRootElement(t *testing.T) {
	t.Parallel()
	a := newAnalyzer(t, &testutil.DummyWebClient{})

	_, err := a.Analyze(context.Background(), "https://example.com/plain")
	if !errors.Is(err, assessor.ErrNoRootElement) {
		t.Fatalf("expected ErrNoRootElement, got %v", err)
	}
}

// TestDefaultAnalyzer_Health verifies that Health returns "ok"
func TestDefaultAnalyzer_Health(t *testing.T) {
	t.Parallel()
	a := newAnalyzer(t, &testutil.DummyWebClient{})

	status, err := a.Health(context.Background())
	if err != nil {
		t.Fatalf("Health returned error: %v", err)
	}
	if status != "ok" {
		t.Errorf("Expected status 'ok', got %q", status)
	}
}

func TestDefaultAnalyzer_Close(t *testing.T) {
	t.Parallel()
	wc := &testutil.DummyWebClient{}
	a := newAnalyzer(t, wc)
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !wc.Closed {
		t.Error("expected webclient closed")
	}
}

func TestDefaultAnalyzer_Analyze_ReportsStages(t *testing.T) {
	t.Parallel()
	a := newAnalyzer(t, &testutil.DummyWebClient{Pages: map[string]string{"https://example.com": `<html lang="en"></html>`}})

	var stages []analyzer.Stage
	ctx := analyzer.WithProgress(context.Background(), func(s analyzer.Stage) {
		stages = append(stages, s)
	})
	if _, err := a.Analyze(ctx, "https://example.com"); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(stages) != 2 || stages[0] != analyzer.StageFetching || stages[1] != analyzer.StageTallying {
		t.Errorf("unexpected stages: %v", stages)
	}
}
