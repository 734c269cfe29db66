// Package report renders and exports scenario results.
package report

import "projectile-sim/internal/scenario"

// Writer is implemented by every result sink.
type Writer interface {
	Write(scenario.Result) error
}

// Optional: writers can also support batch mode.
type batchWriter interface {
	WriteBatch([]scenario.Result) error
}

// WriteAll sends results to w, using batch mode when supported.
func WriteAll(w Writer, results []scenario.Result) error {
	if bw, ok := w.(batchWriter); ok {
		return bw.WriteBatch(results)
	}
	for _, r := range results {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}
