package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/raysh454/a11ylens/internal/app"
	"github.com/raysh454/a11ylens/internal/model"
)

// Runner executes one analysis run and streams its stages.
type Runner interface {
	RunRequest(ctx context.Context, req model.AnalysisRequest, events chan<- app.RunEvent) *model.RunOutcome
	APIKeySet() bool
	APIKeyStatus() string
	Backend() string
}

// runEventMsg carries one stage change into Update.
type runEventMsg app.RunEvent

// runClosedMsg is delivered once the event channel is drained.
type runClosedMsg struct{}

// runCmd executes the run and closes events when it returns.
func runCmd(ctx context.Context, r Runner, req model.AnalysisRequest, events chan app.RunEvent) tea.Cmd {
	return func() tea.Msg {
		defer close(events)
		r.RunRequest(ctx, req, events)
		return nil
	}
}

// waitForEvent blocks until the next stage change.
func waitForEvent(events <-chan app.RunEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return runClosedMsg{}
		}
		return runEventMsg(ev)
	}
}
