package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/raysh454/a11ylens/internal/model"
)

// Format names an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatJSON, FormatYAML}
}

// ParseFormat accepts a format name, case-insensitively. "md" and "yml" are
// accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Writer renders one run outcome.
type Writer interface {
	// Write outputs the outcome and returns the number of bytes written.
	Write(out *model.RunOutcome) (int, error)
}

// Options tune the human-facing writers.
type Options struct {
	// Color enables ANSI styling in the text writer.
	Color bool
	// Hyperlinks renders guideline titles as OSC 8 terminal links.
	Hyperlinks bool
	// ChartWidth is the length of the longest bar; <= 0 means DefaultChartWidth.
	ChartWidth int
	// ShowAPIStatus appends the Firecrawl key indicator.
	ShowAPIStatus bool
	APIKeyStatus  string
}

// NewWriter returns the writer for f.
func NewWriter(f Format, w io.Writer, opts Options) (Writer, error) {
	switch f {
	case FormatText:
		return NewTextWriter(w, opts), nil
	case FormatMarkdown:
		return NewMarkdownWriter(w, opts), nil
	case FormatJSON:
		return NewJSONWriter(w, WithPrettyPrint()), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// countingWriter tracks how many bytes went through.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

// CountLines renders "Missing Alt Text: 1" style lines in display order.
func CountLines(r model.AccessibilityReport) []string {
	entries := r.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s: %d", e.Category.Title(), e.Count)
	}
	return lines
}
