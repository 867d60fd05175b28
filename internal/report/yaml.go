package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/raysh454/a11ylens/internal/model"
)

// YAMLWriter outputs reports as YAML documents.
type YAMLWriter struct {
	baseWriter
}

func NewYAMLWriter(output io.Writer) *YAMLWriter {
	return &YAMLWriter{baseWriter: newBaseWriter(output)}
}

func (w *YAMLWriter) Write(out *model.RunOutcome) (int, error) {
	cw := &countingWriter{w: w.output}
	enc := yaml.NewEncoder(cw)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return cw.n, err
	}
	return cw.n, enc.Close()
}
