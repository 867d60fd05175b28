package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// StdoutLogger is the structured logger used by the CLI and the API server.
// It writes JSON lines through log/slog and masks secrets before they reach
// the output.
type StdoutLogger struct {
	root      *slog.Logger
	logger    *slog.Logger
	component string
	fields    []slog.Attr
}

// NewStdoutLogger creates a StdoutLogger writing to stderr at info level.
// component is optional and is attached to every entry.
func NewStdoutLogger(component string) *StdoutLogger {
	return NewLogger(os.Stderr, component, false)
}

// NewLogger creates a StdoutLogger writing to w. verbose enables debug output.
func NewLogger(w io.Writer, component string, verbose bool) *StdoutLogger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := NewRedactingHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	return newStdoutLogger(slog.New(handler), component, nil)
}

func newStdoutLogger(root *slog.Logger, component string, fields []slog.Attr) *StdoutLogger {
	args := make([]any, 0, len(fields)+1)
	if component != "" {
		args = append(args, slog.String("component", component))
	}
	for _, f := range fields {
		args = append(args, f)
	}
	return &StdoutLogger{
		root:      root,
		logger:    root.With(args...),
		component: component,
		fields:    fields,
	}
}

func (s *StdoutLogger) log(level slog.Level, msg string, fields ...Field) {
	if !s.logger.Enabled(context.Background(), level) {
		return
	}
	s.logger.LogAttrs(context.Background(), level, msg, toAttrs(fields)...)
}

func (s *StdoutLogger) Debug(msg string, fields ...Field) {
	s.log(slog.LevelDebug, msg, fields...)
}

func (s *StdoutLogger) Info(msg string, fields ...Field) {
	s.log(slog.LevelInfo, msg, fields...)
}

func (s *StdoutLogger) Warn(msg string, fields ...Field) {
	s.log(slog.LevelWarn, msg, fields...)
}

func (s *StdoutLogger) Error(msg string, fields ...Field) {
	s.log(slog.LevelError, msg, fields...)
}

// With returns a child logger. A "component" field replaces the parent's
// component rather than nesting under it.
func (s *StdoutLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return s
	}
	component := s.component
	merged := append([]slog.Attr(nil), s.fields...)
	for _, a := range toAttrs(fields) {
		if a.Key == "component" {
			component = a.Value.String()
			continue
		}
		merged = append(merged, a)
	}
	return newStdoutLogger(s.root, component, merged)
}

func toAttrs(fields []Field) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok && err != nil {
			attrs = append(attrs, slog.String(f.Key, err.Error()))
			continue
		}
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	return attrs
}
