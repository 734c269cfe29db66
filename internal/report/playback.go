package report

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"projectile-sim/internal/scenario"
)

// ReplayLog decodes JSONL results from r and re-renders each through writer.
// It returns the number of results replayed.
func ReplayLog(r io.Reader, writer Writer) (int, error) {
	dec := json.NewDecoder(r)
	n := 0
	for {
		var res scenario.Result
		if err := dec.Decode(&res); err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, err
		}
		if err := writer.Write(res); err != nil {
			return n, err
		}
		n++
	}
}

// ReplayLogFile opens a file and replays its results.
func ReplayLogFile(path string, writer Writer) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return ReplayLog(f, writer)
}
