package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"gopkg.in/yaml.v3"

	"github.com/raysh454/a11ylens/internal/model"
)

// WriteGuidelines renders a standalone guideline list.
func WriteGuidelines(w io.Writer, f Format, gs []model.Guideline, opts Options) error {
	if gs == nil {
		gs = []model.Guideline{}
	}
	switch f {
	case FormatText:
		tw := NewTextWriter(w, opts)
		var b strings.Builder
		b.WriteString(render(styleHeading, "WCAG Guidelines for Reference", opts.Color))
		b.WriteString("\n")
		for i, g := range gs {
			fmt.Fprintf(&b, "%d. %s\n", i+1, tw.link(g))
		}
		_, err := io.WriteString(w, b.String())
		return err
	case FormatMarkdown:
		md := markdown.NewMarkdown(w)
		md.H2("WCAG Guidelines for Reference")
		md.PlainText("")
		links := make([]string, len(gs))
		for i, g := range gs {
			links[i] = markdown.Link(g.Title, g.Link)
		}
		md.BulletList(links...)
		return md.Build()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(gs)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(gs); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
