package analyzer

import "context"

// Stage is a step inside one analysis.
type Stage string

const (
	StageFetching Stage = "fetching"
	StageTallying Stage = "tallying"
)

// ProgressFunc is called as an analysis moves between stages.
type ProgressFunc func(Stage)

type progressKey struct{}

// WithProgress returns a context that makes Analyze report its stages to fn.
func WithProgress(ctx context.Context, fn ProgressFunc) context.Context {
	if fn == nil {
		return ctx
	}
	return context.WithValue(ctx, progressKey{}, fn)
}

func reportStage(ctx context.Context, s Stage) {
	if fn, ok := ctx.Value(progressKey{}).(ProgressFunc); ok {
		fn(s)
	}
}
