// Package tui is the interactive front-end: a URL prompt, a spinner while the
// run is in flight, then the counts, chart and guideline links.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/raysh454/a11ylens/internal/app"
	"github.com/raysh454/a11ylens/internal/model"
	"github.com/raysh454/a11ylens/internal/report"
)

// state is the current phase of the UI.
type state int

const (
	stateInput state = iota
	stateRunning
	stateDone
)

const (
	minChartWidth = 10
	emptyURLHint  = "Please enter a URL to analyze."
)

// Model is the top-level Bubble Tea model.
type Model struct {
	ctx    context.Context
	runner Runner

	input      textinput.Model
	spinner    spinner.Model
	state      state
	stage      app.RunStage
	target     string
	outcome    *model.RunOutcome
	events     chan app.RunEvent
	guidelines bool
	warning    string
	width      int
	height     int
}

// New creates the model. ctx bounds every run started from the UI.
func New(ctx context.Context, r Runner) Model {
	ti := textinput.New()
	ti.Placeholder = "https://example.com"
	ti.CharLimit = 2048
	ti.Prompt = "URL: "
	ti.PromptStyle = stylePrompt
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSpinner

	return Model{
		ctx:        ctx,
		runner:     r,
		input:      ti,
		spinner:    sp,
		state:      stateInput,
		guidelines: true,
		width:      80,
		height:     24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - len(m.input.Prompt) - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != stateRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case runEventMsg:
		return m.handleEvent(app.RunEvent(msg))

	case runClosedMsg:
		if m.state == stateRunning {
			m.state = stateDone
		}
		m.events = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.ToggleGuidelines):
		m.guidelines = !m.guidelines
		return m, nil
	case key.Matches(msg, keys.Clear):
		if m.state == stateRunning {
			return m, nil
		}
		m.input.SetValue("")
		m.outcome = nil
		m.warning = ""
		m.state = stateInput
		return m, nil
	case key.Matches(msg, keys.Submit):
		return m.submit()
	}

	if m.state == stateRunning {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state == stateRunning {
		return m, nil
	}
	target := strings.TrimSpace(m.input.Value())
	if target == "" {
		m.warning = emptyURLHint
		return m, nil
	}

	m.warning = ""
	m.outcome = nil
	m.target = target
	m.state = stateRunning
	m.stage = app.RunPending
	m.events = make(chan app.RunEvent, 8)

	req := model.AnalysisRequest{URL: target, Guidelines: m.guidelines}
	return m, tea.Batch(
		m.spinner.Tick,
		runCmd(m.ctx, m.runner, req, m.events),
		waitForEvent(m.events),
	)
}

func (m Model) handleEvent(ev app.RunEvent) (tea.Model, tea.Cmd) {
	m.stage = ev.Stage
	if ev.Stage.Terminal() {
		m.outcome = ev.Outcome
		m.state = stateDone
	}
	if m.events == nil {
		return m, nil
	}
	return m, waitForEvent(m.events)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(styleWarning.Render(m.warning))
		b.WriteString("\n")
	}

	switch m.state {
	case stateRunning:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(stageText(m.stage, m.target))
		b.WriteString("\n")
	case stateDone:
		b.WriteString(styleBody.Render(m.renderOutcome()))
		b.WriteString("\n")
	}

	b.WriteString(styleFooter.Render(helpLine()))
	return b.String()
}

func (m Model) renderHeader() string {
	status := ""
	if m.runner != nil {
		status = statusStyle(m.runner.APIKeySet()).Render(m.runner.APIKeyStatus())
		status += styleMuted.Render("  backend: " + m.runner.Backend())
	}
	guide := "guidelines: on"
	if !m.guidelines {
		guide = "guidelines: off"
	}
	return styleHeader.Render("Web Accessibility Analyzer  " + status + styleMuted.Render("  "+guide))
}

func (m Model) renderOutcome() string {
	if m.outcome == nil {
		return styleMuted.Render("run ended without a result")
	}
	width := m.width - 40
	if width < minChartWidth {
		width = minChartWidth
	}
	w := report.NewTextWriter(nil, report.Options{
		Color:      true,
		Hyperlinks: true,
		ChartWidth: width,
	})
	return strings.TrimRight(w.Render(m.outcome), "\n")
}

func stageText(s app.RunStage, target string) string {
	switch s {
	case app.RunFetching:
		return "Fetching " + target + "..."
	case app.RunTallying:
		return "Analyzing accessibility..."
	case app.RunGuidelines:
		return "Fetching WCAG guidelines..."
	}
	return "Analyzing..."
}
