package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/raysh454/a11ylens/internal/model"
)

// TextWriter renders a terminal view: counts, bar chart and guideline links.
type TextWriter struct {
	baseWriter
	opts Options
}

func NewTextWriter(output io.Writer, opts Options) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output), opts: opts}
}

func (w *TextWriter) Write(out *model.RunOutcome) (int, error) {
	cw := &countingWriter{w: w.output}
	_, err := io.WriteString(cw, w.Render(out))
	return cw.n, err
}

// Render returns the text view as a string.
func (w *TextWriter) Render(out *model.RunOutcome) string {
	color := w.opts.Color
	var b strings.Builder

	if out == nil {
		return ""
	}
	if out.Failed() || out.Result == nil {
		b.WriteString(render(styleError, errorMessage(out), color))
		b.WriteString("\n")
		w.writeStatus(&b)
		return b.String()
	}

	res := out.Result
	b.WriteString(render(styleHeading, "Accessibility Analysis Results", color))
	b.WriteString("\n")
	meta := res.URL
	if res.FinalURL != "" {
		meta += " → " + res.FinalURL
	}
	meta += fmt.Sprintf(" (%s, HTTP %d)", res.Backend, res.StatusCode)
	b.WriteString(render(styleMuted, meta, color))
	b.WriteString("\n\n")

	for _, line := range CountLines(res.Report) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(render(styleHeading, "Accessibility Issues", color))
	b.WriteString("\n")
	b.WriteString(Chart(res.Report, w.opts.ChartWidth, color))

	if len(out.Guidelines) > 0 {
		b.WriteString("\n")
		b.WriteString(render(styleHeading, "WCAG Guidelines for Reference", color))
		b.WriteString("\n")
		for _, g := range out.Guidelines {
			b.WriteString("  • ")
			b.WriteString(w.link(g))
			b.WriteString("\n")
		}
	}

	w.writeStatus(&b)
	return b.String()
}

func (w *TextWriter) link(g model.Guideline) string {
	if w.opts.Hyperlinks {
		return render(styleLink, hyperlink(g.Title, g.Link), w.opts.Color)
	}
	return g.Title + " <" + g.Link + ">"
}

func (w *TextWriter) writeStatus(b *strings.Builder) {
	if !w.opts.ShowAPIStatus || w.opts.APIKeyStatus == "" {
		return
	}
	b.WriteString("\n")
	style := styleOK
	if strings.Contains(w.opts.APIKeyStatus, "not set") {
		style = styleError
	}
	b.WriteString(render(style, w.opts.APIKeyStatus, w.opts.Color))
	b.WriteString("\n")
}

func errorMessage(out *model.RunOutcome) string {
	switch {
	case out.ErrMessage != "":
		return out.ErrMessage
	case out.Err != nil:
		return out.Err.Error()
	}
	return "no result"
}
