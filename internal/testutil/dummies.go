// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/raysh454/a11ylens/internal/logging"
	"github.com/raysh454/a11ylens/internal/model"
	"github.com/raysh454/a11ylens/internal/webclient"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ErrorCount returns the number of recorded error entries.
func (l *DummyLogger) ErrorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Errors)
}

// ─── WebClient ─────────────────────────────────────────────────────────

// ErrDummyFetch is returned for URLs listed in DummyWebClient.FailURLs.
var ErrDummyFetch = errors.New("dummy fetch fail")

// DummyWebClient implements webclient.WebClient.
// Pages maps a URL to its body; unknown URLs return "ok:<url>" with status 200.
// Statuses overrides the status per URL and FailURLs[url] = true forces an error.
type DummyWebClient struct {
	ResponseDelay time.Duration
	Pages         map[string]string
	Statuses      map[string]int
	FailURLs      map[string]bool
	Backend       string

	mu       sync.Mutex
	Requests []*webclient.Request
	Closed   bool
}

func (d *DummyWebClient) Do(ctx context.Context, req *webclient.Request) (*webclient.Response, error) {
	if d.ResponseDelay > 0 {
		select {
		case <-time.After(d.ResponseDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	d.mu.Unlock()

	if d.FailURLs != nil && d.FailURLs[req.URL] {
		return nil, ErrDummyFetch
	}

	body, ok := d.Pages[req.URL]
	if !ok {
		body = "ok:" + req.URL
	}
	status := 200
	if s, ok := d.Statuses[req.URL]; ok {
		status = s
	}
	backend := d.Backend
	if backend == "" {
		backend = "dummy"
	}

	return &webclient.Response{
		Request:    req,
		Body:       []byte(body),
		StatusCode: status,
		FetchedAt:  time.Now(),
		Backend:    backend,
	}, nil
}

func (d *DummyWebClient) Get(ctx context.Context, url string) (*webclient.Response, error) {
	return d.Do(ctx, &webclient.Request{Method: "GET", URL: url})
}

func (d *DummyWebClient) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed = true
	return nil
}

// RequestedURLs returns the URLs seen so far, in order.
func (d *DummyWebClient) RequestedURLs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.Requests))
	for i, r := range d.Requests {
		out[i] = r.URL
	}
	return out
}

// ─── Analyzer ──────────────────────────────────────────────────────────

// DummyAnalyzer implements analyzer.Analyzer with a preconfigured result.
type DummyAnalyzer struct {
	Report model.AccessibilityReport
	Err    error

	mu    sync.Mutex
	Calls []string
}

func (d *DummyAnalyzer) Analyze(ctx context.Context, url string) (*model.AnalysisResult, error) {
	d.mu.Lock()
	d.Calls = append(d.Calls, url)
	d.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.Err != nil {
		return nil, d.Err
	}
	return &model.AnalysisResult{
		ID:         "dummy-run",
		URL:        url,
		StatusCode: 200,
		Backend:    "dummy",
		Report:     d.Report,
		FetchedAt:  time.Now(),
	}, nil
}

func (d *DummyAnalyzer) Health(context.Context) (string, error) { return "ok", nil }

func (d *DummyAnalyzer) Close() error { return nil }

// CallCount returns how many times Analyze ran.
func (d *DummyAnalyzer) CallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Calls)
}

// ─── Guidelines ────────────────────────────────────────────────────────

// DummyGuidelineSource implements the guideline lookup used by the runner.
type DummyGuidelineSource struct {
	Guidelines []model.Guideline
	Err        error

	mu    sync.Mutex
	calls int
}

func (d *DummyGuidelineSource) Lookup(ctx context.Context) ([]model.Guideline, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.Err != nil {
		return nil, d.Err
	}
	return append([]model.Guideline(nil), d.Guidelines...), nil
}

// CallCount returns how many times Lookup ran.
func (d *DummyGuidelineSource) CallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// SampleGuidelines returns n distinct guidelines.
func SampleGuidelines(n int) []model.Guideline {
	titles := []string{
		"Text Alternatives", "Time-based Media", "Adaptable",
		"Distinguishable", "Keyboard Accessible", "Enough Time",
	}
	out := make([]model.Guideline, 0, n)
	for i := 0; i < n && i < len(titles); i++ {
		out = append(out, model.Guideline{
			Title: titles[i],
			Link:  "https://www.w3.org/WAI/WCAG21/Understanding/guideline-" + string(rune('1'+i)),
		})
	}
	return out
}
