package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/raysh454/a11ylens/internal/analyzer"
	"github.com/raysh454/a11ylens/internal/guidelines"
	"github.com/raysh454/a11ylens/internal/logging"
	"github.com/raysh454/a11ylens/internal/model"
)

// RunStage is the lifecycle position of a run, reported through RunEvents.
type RunStage string

const (
	RunPending    RunStage = "pending"
	RunFetching   RunStage = "fetching"
	RunTallying   RunStage = "tallying"
	RunGuidelines RunStage = "guidelines"
	RunDone       RunStage = "done"
	RunFailed     RunStage = "failed"
)

// Terminal reports whether no further events follow s.
func (s RunStage) Terminal() bool {
	return s == RunDone || s == RunFailed
}

// RunEvent is emitted at every stage change. The terminal event carries the
// outcome.
type RunEvent struct {
	RunID   string            `json:"run_id"`
	Target  string            `json:"target"`
	Stage   RunStage          `json:"stage"`
	Error   string            `json:"error,omitempty"`
	Outcome *model.RunOutcome `json:"outcome,omitempty"`
	At      time.Time         `json:"at"`
}

var ErrNilAnalyzer = errors.New("app: runner needs an analyzer")

const (
	APIKeySetStatus    = "Firecrawl API key is set"
	APIKeyNotSetStatus = "Firecrawl API key is not set"
)

// APIKeyStatusText renders the key indicator shown by every front-end.
func APIKeyStatusText(set bool) string {
	if set {
		return APIKeySetStatus
	}
	return APIKeyNotSetStatus
}

// RunnerOptions describe the environment the runner reports on.
type RunnerOptions struct {
	APIKeySet bool
	Backend   string
}

// Runner is the outermost user-triggered flow: analyze, then look up
// guidelines. Every failure ends the run with one displayable message.
type Runner struct {
	analyzer   analyzer.Analyzer
	guidelines guidelines.Lookuper
	opts       RunnerOptions
	logger     logging.Logger
}

// NewRunner ties together an analyzer and a guideline source. g may be nil,
// in which case runs never include guidelines.
func NewRunner(a analyzer.Analyzer, g guidelines.Lookuper, opts RunnerOptions, logger logging.Logger) (*Runner, error) {
	if a == nil {
		return nil, ErrNilAnalyzer
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Runner{
		analyzer:   a,
		guidelines: g,
		opts:       opts,
		logger:     logger.With(logging.Field{Key: "component", Value: "runner"}),
	}, nil
}

// APIKeySet reports whether the Firecrawl key was configured.
func (r *Runner) APIKeySet() bool { return r.opts.APIKeySet }

// APIKeyStatus is the human readable key indicator.
func (r *Runner) APIKeyStatus() string { return APIKeyStatusText(r.opts.APIKeySet) }

// Backend names the configured fetch backend.
func (r *Runner) Backend() string { return r.opts.Backend }

// Analyzer exposes the underlying analyzer for health checks.
func (r *Runner) Analyzer() analyzer.Analyzer { return r.analyzer }

// Health reports whether the analyzer can take runs.
func (r *Runner) Health(ctx context.Context) (string, error) {
	return r.analyzer.Health(ctx)
}

// Guidelines runs a guideline lookup on its own.
func (r *Runner) Guidelines(ctx context.Context) ([]model.Guideline, error) {
	if r.guidelines == nil {
		return nil, nil
	}
	return r.guidelines.Lookup(ctx)
}

// Run analyzes url and fetches guidelines.
func (r *Runner) Run(ctx context.Context, url string, events chan<- RunEvent) *model.RunOutcome {
	return r.RunRequest(ctx, model.AnalysisRequest{URL: url, Guidelines: true}, events)
}

// RunRequest executes one run. Events, when non-nil, receive every stage in
// order; the caller owns the channel and closes it after RunRequest returns.
func (r *Runner) RunRequest(ctx context.Context, req model.AnalysisRequest, events chan<- RunEvent) *model.RunOutcome {
	runID := uuid.New().String()
	l := r.logger.With(logging.Field{Key: "run_id", Value: runID})
	out := &model.RunOutcome{Target: req.URL}

	emit := func(stage RunStage) {
		if events == nil {
			return
		}
		ev := RunEvent{RunID: runID, Target: req.URL, Stage: stage, At: time.Now().UTC()}
		if stage.Terminal() {
			ev.Outcome = out
			ev.Error = out.ErrMessage
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}
	fail := func(err error) *model.RunOutcome {
		out.Err = err
		out.Result = nil
		out.Guidelines = nil
		out.ErrMessage = fmt.Sprintf("Error analyzing %s: %v", req.URL, err)
		l.Warn("run failed",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: err})
		emit(RunFailed)
		return out
	}

	emit(RunPending)
	l.Info("run started", logging.Field{Key: "url", Value: req.URL})

	actx := analyzer.WithProgress(ctx, func(s analyzer.Stage) {
		switch s {
		case analyzer.StageFetching:
			emit(RunFetching)
		case analyzer.StageTallying:
			emit(RunTallying)
		}
	})
	result, err := r.analyzer.Analyze(actx, req.URL)
	if err != nil {
		return fail(err)
	}
	out.Result = result

	if req.Guidelines && r.guidelines != nil {
		emit(RunGuidelines)
		gs, err := r.guidelines.Lookup(ctx)
		if err != nil {
			return fail(err)
		}
		out.Guidelines = gs
	}

	l.Info("run finished",
		logging.Field{Key: "url", Value: req.URL},
		logging.Field{Key: "total_issues", Value: result.Report.Total()},
		logging.Field{Key: "guidelines", Value: len(out.Guidelines)})
	emit(RunDone)
	return out
}
