package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/raysh454/a11ylens/internal/model"
)

// MarkdownWriter outputs reports as GitHub flavored Markdown.
type MarkdownWriter struct {
	baseWriter
	opts Options
}

func NewMarkdownWriter(output io.Writer, opts Options) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output), opts: opts}
}

func (w *MarkdownWriter) Write(out *model.RunOutcome) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Accessibility Analysis Results")
	md.PlainText("")

	if out == nil || out.Failed() || out.Result == nil {
		msg := "no outcome"
		if out != nil {
			msg = errorMessage(out)
		}
		md.PlainTextf("**Error:** %s", msg)
		md.PlainText("")
		w.writeStatus(md)
		return len(md.String()), md.Build()
	}

	res := out.Result
	w.writeSummary(md, res)
	w.writeCounts(md, res.Report)
	w.writeChart(md, res.Report)
	w.writeGuidelines(md, out.Guidelines)
	w.writeStatus(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, res *model.AnalysisResult) {
	rows := [][]string{
		{"URL", res.URL},
	}
	if res.FinalURL != "" {
		rows = append(rows, []string{"Final URL", res.FinalURL})
	}
	rows = append(rows,
		[]string{"Backend", res.Backend},
		[]string{"HTTP Status", strconv.Itoa(res.StatusCode)},
		[]string{"Run ID", "`" + res.ID + "`"},
	)
	if !res.FetchedAt.IsZero() {
		rows = append(rows, []string{"Fetched", res.FetchedAt.UTC().Format("2006-01-02 15:04:05 MST")})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeCounts(md *markdown.Markdown, r model.AccessibilityReport) {
	md.H2("Issues")
	md.PlainText("")

	entries := r.Entries()
	rows := make([][]string, 0, len(entries)+1)
	for _, e := range entries {
		rows = append(rows, []string{e.Category.Title(), strconv.Itoa(e.Count)})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(r.Total()) + "**"})
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if r.Total() == 0 {
		md.Tip("No accessibility issues detected by the static checks.")
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeChart(md *markdown.Markdown, r model.AccessibilityReport) {
	md.H2("Accessibility Issues")
	md.PlainText("")
	md.PlainText("```text\n" + Chart(r, w.opts.ChartWidth, false) + "```")
	md.PlainText("")

	if r.Total() == 0 {
		return
	}
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Issue Distribution"),
		piechart.WithShowData(true),
	)
	for _, e := range r.Entries() {
		if e.Count > 0 {
			chart.LabelAndIntValue(e.Category.Title(), uint64(e.Count))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeGuidelines(md *markdown.Markdown, gs []model.Guideline) {
	if len(gs) == 0 {
		return
	}
	md.H2("WCAG Guidelines for Reference")
	md.PlainText("")
	links := make([]string, len(gs))
	for i, g := range gs {
		links[i] = markdown.Link(g.Title, g.Link)
	}
	md.BulletList(links...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeStatus(md *markdown.Markdown) {
	if !w.opts.ShowAPIStatus || w.opts.APIKeyStatus == "" {
		return
	}
	md.Note(w.opts.APIKeyStatus)
	md.PlainText("")
}
