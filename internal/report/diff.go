package report

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/raysh454/a11ylens/internal/model"
)

// LineDiff compares two rendered reports line by line. Unchanged lines are
// prefixed with two spaces, removed lines with "- " and added ones with "+ ".
func LineDiff(base, head string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(base, head)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}

// CategoryDelta is the change of one category between two reports.
type CategoryDelta struct {
	Category model.Category `json:"category" yaml:"category"`
	Base     int            `json:"base" yaml:"base"`
	Head     int            `json:"head" yaml:"head"`
	Delta    int            `json:"delta" yaml:"delta"`
}

// CompareReports returns one delta per category in display order.
func CompareReports(base, head model.AccessibilityReport) []CategoryDelta {
	out := make([]CategoryDelta, 0, len(model.AllCategories()))
	for _, c := range model.AllCategories() {
		b, h := base.Count(c), head.Count(c)
		out = append(out, CategoryDelta{Category: c, Base: b, Head: h, Delta: h - b})
	}
	return out
}

// Diff renders both outcomes as plain text and diffs them.
func Diff(base, head *model.RunOutcome) string {
	w := NewTextWriter(nil, Options{})
	return LineDiff(w.Render(base), w.Render(head))
}
