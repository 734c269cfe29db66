package report

import (
	"encoding/json"
	"io"
	"os"

	"projectile-sim/internal/scenario"
)

// JSONWriter prints one JSON document per result.
type JSONWriter struct {
	out    io.Writer
	indent bool
}

// NewJSONWriter creates a JSONWriter writing to out (os.Stdout when nil).
// When indent is set documents are pretty-printed.
func NewJSONWriter(out io.Writer, indent bool) *JSONWriter {
	if out == nil {
		out = os.Stdout
	}
	return &JSONWriter{out: out, indent: indent}
}

// Write outputs a result in JSON format.
func (w *JSONWriter) Write(res scenario.Result) error {
	enc := json.NewEncoder(w.out)
	if w.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}

// WriteBatch outputs multiple results in JSON format.
func (w *JSONWriter) WriteBatch(results []scenario.Result) error {
	for _, r := range results {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}
