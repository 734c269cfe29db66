package report

import "projectile-sim/internal/scenario"

// MultiWriter fan-outs results to multiple writers.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a new MultiWriter. Nil writers are skipped.
func NewMultiWriter(ws ...Writer) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range ws {
		if w != nil {
			mw.writers = append(mw.writers, w)
		}
	}
	return mw
}

// Write sends a result to all writers.
func (mw *MultiWriter) Write(res scenario.Result) error {
	for _, w := range mw.writers {
		if err := w.Write(res); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple results to all writers, using batch if supported.
func (mw *MultiWriter) WriteBatch(results []scenario.Result) error {
	for _, w := range mw.writers {
		if err := WriteAll(w, results); err != nil {
			return err
		}
	}
	return nil
}
