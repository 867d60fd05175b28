package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/raysh454/a11ylens/internal/app"
	"github.com/raysh454/a11ylens/internal/model"
)

type fakeRunner struct {
	keySet  bool
	err     error
	lastReq model.AnalysisRequest
}

func (f *fakeRunner) RunRequest(_ context.Context, req model.AnalysisRequest, events chan<- app.RunEvent) *model.RunOutcome {
	f.lastReq = req
	out := &model.RunOutcome{Target: req.URL}
	events <- app.RunEvent{Target: req.URL, Stage: app.RunPending}
	events <- app.RunEvent{Target: req.URL, Stage: app.RunFetching}
	if f.err != nil {
		out.Err = f.err
		out.ErrMessage = fmt.Sprintf("Error analyzing %s: %v", req.URL, f.err)
		events <- app.RunEvent{Target: req.URL, Stage: app.RunFailed, Outcome: out, Error: out.ErrMessage}
		return out
	}
	var b model.ReportBuilder
	b.Inc(model.CategoryMissingAltText)
	out.Result = &model.AnalysisResult{URL: req.URL, StatusCode: 200, Backend: "fake", Report: b.Build()}
	if req.Guidelines {
		out.Guidelines = []model.Guideline{{Title: "Non-text Content", Link: "https://example.com/#non-text"}}
	}
	events <- app.RunEvent{Target: req.URL, Stage: app.RunDone, Outcome: out}
	return out
}

func (f *fakeRunner) APIKeySet() bool { return f.keySet }
func (f *fakeRunner) APIKeyStatus() string {
	return app.APIKeyStatusText(f.keySet)
}
func (f *fakeRunner) Backend() string { return "fake" }

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

// drive runs the run command to completion and feeds every message back into
// the model, the way the Bubble Tea runtime would.
func drive(t *testing.T, m Model) Model {
	t.Helper()
	go runCmd(m.ctx, m.runner, model.AnalysisRequest{URL: m.target, Guidelines: m.guidelines}, m.events)()
	next := waitForEvent(m.events)
	for i := 0; next != nil && i < 16; i++ {
		updated, cmd := m.Update(next())
		m = updated.(Model)
		next = cmd
	}
	return m
}

func TestViewShowsAPIKeyStatus(t *testing.T) {
	m := New(context.Background(), &fakeRunner{keySet: false})
	if !strings.Contains(m.View(), "Firecrawl API key is not set") {
		t.Errorf("expected key status in view:\n%s", m.View())
	}

	m = New(context.Background(), &fakeRunner{keySet: true})
	if !strings.Contains(m.View(), "Firecrawl API key is set") {
		t.Errorf("expected key status in view:\n%s", m.View())
	}
}

func TestSubmitEmptyURLWarns(t *testing.T) {
	m := New(context.Background(), &fakeRunner{})
	updated, cmd := m.Update(enter())
	m = updated.(Model)
	if cmd != nil {
		t.Error("expected no command for empty input")
	}
	if m.state != stateInput {
		t.Errorf("expected input state, got %d", m.state)
	}
	if !strings.Contains(m.View(), emptyURLHint) {
		t.Errorf("expected warning in view:\n%s", m.View())
	}
}

func TestSubmitStartsRun(t *testing.T) {
	m := New(context.Background(), &fakeRunner{})
	m.input.SetValue("  https://example.com ")
	updated, cmd := m.Update(enter())
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected run command")
	}
	if m.state != stateRunning {
		t.Fatalf("expected running state, got %d", m.state)
	}
	if m.target != "https://example.com" {
		t.Errorf("expected trimmed target, got %q", m.target)
	}
	if !strings.Contains(m.View(), "Analyzing...") {
		t.Errorf("expected spinner text in view:\n%s", m.View())
	}

	// A second enter while running is ignored.
	updated, cmd = m.Update(enter())
	if cmd != nil || updated.(Model).state != stateRunning {
		t.Error("expected submit to be ignored while running")
	}
}

func TestRunToCompletionRendersResults(t *testing.T) {
	r := &fakeRunner{}
	m := New(context.Background(), r)
	m.input.SetValue("https://example.com")
	updated, _ := m.Update(enter())
	m = drive(t, updated.(Model))

	if m.state != stateDone {
		t.Fatalf("expected done state, got %d", m.state)
	}
	if m.stage != app.RunDone {
		t.Errorf("expected last stage done, got %q", m.stage)
	}
	view := m.View()
	for _, want := range []string{"Missing Alt Text: 1", "Accessibility Issues", "Non-text Content"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if !r.lastReq.Guidelines {
		t.Error("expected guidelines to be requested by default")
	}
}

func TestRunFailureRendersMessage(t *testing.T) {
	m := New(context.Background(), &fakeRunner{err: errors.New("connection refused")})
	m.input.SetValue("https://down.example")
	updated, _ := m.Update(enter())
	m = drive(t, updated.(Model))

	if !strings.Contains(m.View(), "Error analyzing https://down.example: connection refused") {
		t.Errorf("expected error message in view:\n%s", m.View())
	}
	if strings.Contains(m.View(), "Missing Alt Text") {
		t.Error("failed run must not show counts")
	}
}

func TestToggleGuidelines(t *testing.T) {
	r := &fakeRunner{}
	m := New(context.Background(), r)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	m = updated.(Model)
	if m.guidelines {
		t.Fatal("expected guidelines off after toggle")
	}
	if !strings.Contains(m.View(), "guidelines: off") {
		t.Errorf("expected toggle state in header:\n%s", m.View())
	}

	m.input.SetValue("https://example.com")
	updated, _ = m.Update(enter())
	m = drive(t, updated.(Model))
	if r.lastReq.Guidelines {
		t.Error("expected guidelines not requested")
	}
	if strings.Contains(m.View(), "WCAG Guidelines for Reference") {
		t.Error("expected no guideline section")
	}
}

func TestClearResetsView(t *testing.T) {
	m := New(context.Background(), &fakeRunner{})
	m.input.SetValue("https://example.com")
	updated, _ := m.Update(enter())
	m = drive(t, updated.(Model))

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(Model)
	if m.state != stateInput || m.outcome != nil || m.input.Value() != "" {
		t.Errorf("expected cleared model, got state=%d outcome=%v input=%q", m.state, m.outcome, m.input.Value())
	}
}

func TestQuit(t *testing.T) {
	m := New(context.Background(), &fakeRunner{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestWindowResize(t *testing.T) {
	m := New(context.Background(), &fakeRunner{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	if m.width != 120 || m.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", m.width, m.height)
	}
}

func TestStageText(t *testing.T) {
	tests := []struct {
		stage app.RunStage
		want  string
	}{
		{app.RunPending, "Analyzing..."},
		{app.RunFetching, "Fetching https://x.test..."},
		{app.RunTallying, "Analyzing accessibility..."},
		{app.RunGuidelines, "Fetching WCAG guidelines..."},
	}
	for _, tt := range tests {
		if got := stageText(tt.stage, "https://x.test"); got != tt.want {
			t.Errorf("stageText(%q) = %q, want %q", tt.stage, got, tt.want)
		}
	}
}
