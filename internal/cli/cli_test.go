package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raysh454/a11ylens/internal/cli"
)

const testPage = `<html lang="en"><body><img src="a.png"><a href="/"></a><input></body></html>`

const quickref = `
<div class="guideline"><h3 class="guideline-title">Text Alternatives</h3><a href="/understanding/text">x</a></div>
<div class="guideline"><h3 class="guideline-title">Adaptable</h3><a href="/understanding/adaptable">x</a></div>`

func newFixture(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, testPage)
	})
	mux.HandleFunc("/fixed", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<html lang="en"><body><img src="a.png" alt="logo"><label>Name</label><input></body></html>`)
	})
	mux.HandleFunc("/quickref/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, quickref)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// writeConfig points the guideline lookup at the fixture and selects the
// direct HTTP backend.
func writeConfig(t *testing.T, ts *httptest.Server, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a11ylens.yaml")
	body := "webclient:\n  client: nethttp\n" + extra +
		"guidelines:\n  url: " + ts.URL + "/quickref/\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := cli.Run(context.Background(), args, cli.Options{Stdout: &stdout, Stderr: &stderr})
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	t.Parallel()
	code, out, _ := run(t, "version")
	if code != cli.ExitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(out, "a11ylens ") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestConfigPrintsSample(t *testing.T) {
	t.Parallel()
	code, out, _ := run(t, "config")
	if code != cli.ExitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "webclient:") || !strings.Contains(out, "guidelines:") {
		t.Errorf("unexpected sample config:\n%s", out)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()
	ts := newFixture(t)
	cfg := writeConfig(t, ts, "  firecrawl:\n    api_key: fc-test\n")

	code, out, _ := run(t, "status", "--config", cfg, "--format", "json")
	if code != cli.ExitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var res struct {
		Set     bool   `json:"firecrawl_api_key_set"`
		Message string `json:"message"`
		Backend string `json:"backend"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode status: %v (%s)", err, out)
	}
	if !res.Set || res.Message != "Firecrawl API key is set" {
		t.Errorf("unexpected status %+v", res)
	}
	if res.Backend != "nethttp" {
		t.Errorf("expected backend nethttp, got %q", res.Backend)
	}
}

func TestStatus_BackendFlagOverridesConfig(t *testing.T) {
	t.Parallel()
	ts := newFixture(t)
	cfg := writeConfig(t, ts, "")

	code, out, _ := run(t, "status", "--config", cfg, "--backend", "colly")
	if code != cli.ExitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "Backend: colly") {
		t.Errorf("expected colly backend, got:\n%s", out)
	}
}

func TestInvalidInputExitCodes(t *testing.T) {
	t.Parallel()
	ts := newFixture(t)
	cfg := writeConfig(t, ts, "")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown backend", []string{"status", "--config", cfg, "--backend", "gopher"}},
		{"missing url", []string{"analyze", "--config", cfg}},
		{"blank url", []string{"analyze", "--config", cfg, "  "}},
		{"bad format", []string{"analyze", "--config", cfg, "--format", "pdf", ts.URL + "/page"}},
		{"unknown flag", []string{"analyze", "--config", cfg, "--bogus", ts.URL + "/page"}},
		{"tui without terminal", []string{"tui", "--config", cfg}},
		{"missing config file", []string{"status", "--config", filepath.Join(t.TempDir(), "nope.yaml")}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, _, stderr := run(t, tt.args...)
			if code != cli.ExitInvalidInput {
				t.Errorf("expected exit %d, got %d (stderr: %s)", cli.ExitInvalidInput, code, stderr)
			}
		})
	}
}

func TestAnalyze_Text(t *testing.T) {
	t.Parallel()
	ts := newFixture(t)
	cfg := writeConfig(t, ts, "")

	code, out, stderr := run(t, "analyze", "--config", cfg, ts.URL+"/page")
	if code != cli.ExitOK {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr)
	}
	for _, want := range []string{
		"Missing Alt Text: 1",
		"Low Contrast: 0",
		"Missing Lang: 0",
		"Empty Links: 1",
		"Missing Labels: 1",
		"Text Alternatives <" + ts.URL + "/understanding/text>",
		"Firecrawl API key is",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal output must not be colored")
	}
}

func TestAnalyze_JSONNoGuidelines(t *testing.T) {
	t.Parallel()
	ts := newFixture(t)
	cfg := writeConfig(t, ts, "")

	code, out, _ := run(t, "analyze", "--config", cfg, "--format", "json", "--no-guidelines", ts.URL+"/page")
	if code != cli.ExitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var res struct {
		Result struct {
			Report map[string]int `json:"report"`
		} `json:"result"`
		Guidelines []any `json:"guidelines"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v (%s)", err, out)
	}
	if res.Result.Report["missing_labels"] != 1 {
		t.Errorf("unexpected report %v", res.Result.Report)
	}
	if len(res.Guidelines) != 0 {
		t.Errorf("expected no guidelines, got %v", res.Guidelines)
	}
}

func TestAnalyze_OutputFile(t *testing.T) {
	t.Parallel()
	ts := newFixture(t)
	cfg := writeConfig(t, ts, "")
	path := filepath.Join(t.TempDir(), "report.md")

	code, out, _ := run(t, "analyze", "--config", cfg, "--format", "markdown", "--output", path, ts.URL+"/page")
	if code != cli.ExitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if out != "" {
		t.Errorf("expected nothing on stdout, got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "# Accessibility Analysis Results") {
		t.Errorf("unexpected markdown:\n%s", data)
	}
}

func TestAnalyze_FailureExitCode(t *testing.T) {
	t.Parallel()
	ts := newFixture(t)
	cfg := writeConfig(t, ts, "")

	// The mux's 404 body is plain text with no <html> element.
	code, out, stderr := run(t, "analyze", "--config", cfg, ts.URL+"/missing")
	if code != cli.ExitAnalysisError {
		t.Fatalf("expected exit %d, got %d", cli.ExitAnalysisError, code)
	}
	if !strings.Contains(out, "Error analyzing "+ts.URL+"/missing") {
		t.Errorf("expected error message on stdout, got:\n%s", out)
	}
	if strings.Contains(stderr, "Error analyzing") {
		t.Errorf("analysis error should not be printed twice, stderr: %s", stderr)
	}
}

func TestGuidelines(t *testing.T) {
	t.Parallel()
	ts := newFixture(t)
	cfg := writeConfig(t, ts, "")

	code, out, _ := run(t, "guidelines", "--config", cfg, "--limit", "1", "--format", "json")
	if code != cli.ExitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var gs []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	}
	if err := json.Unmarshal([]byte(out), &gs); err != nil {
		t.Fatalf("decode: %v (%s)", err, out)
	}
	if len(gs) != 1 || gs[0].Title != "Text Alternatives" {
		t.Errorf("unexpected guidelines %+v", gs)
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()
	ts := newFixture(t)
	cfg := writeConfig(t, ts, "")

	code, out, _ := run(t, "compare", "--config", cfg, ts.URL+"/page", ts.URL+"/fixed")
	if code != cli.ExitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, want := range []string{
		"- Missing Alt Text: 1",
		"+ Missing Alt Text: 0",
		"Delta",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("compare output missing %q:\n%s", want, out)
		}
	}
}

func TestCompare_OneSideFails(t *testing.T) {
	t.Parallel()
	ts := newFixture(t)
	cfg := writeConfig(t, ts, "")

	code, out, _ := run(t, "compare", "--config", cfg, "--format", "json", ts.URL+"/page", ts.URL+"/missing")
	if code != cli.ExitAnalysisError {
		t.Fatalf("expected exit %d, got %d", cli.ExitAnalysisError, code)
	}
	if !strings.Contains(out, `"error": "Error analyzing `+ts.URL+`/missing`) {
		t.Errorf("expected failed head in JSON, got:\n%s", out)
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want int
	}{
		{nil, cli.ExitOK},
		{&cli.ValidationError{Message: "bad"}, cli.ExitInvalidInput},
		{&cli.AnalysisError{Message: "failed"}, cli.ExitAnalysisError},
		{io.ErrUnexpectedEOF, cli.ExitRuntimeError},
	}
	for _, tt := range tests {
		if got := cli.HandleError(tt.err); got != tt.want {
			t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
