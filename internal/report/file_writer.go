package report

import (
	"encoding/json"
	"os"

	"projectile-sim/internal/scenario"
)

// FileWriter writes results and optionally their samples to JSONL files.
type FileWriter struct {
	resultFile *os.File
	sampleFile *os.File
	resultEnc  *json.Encoder
	sampleEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. samplePath may be empty to skip the sample log.
func NewFileWriter(resultPath, samplePath string) (*FileWriter, error) {
	rf, err := os.Create(resultPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{resultFile: rf, resultEnc: json.NewEncoder(rf)}
	if samplePath != "" {
		sf, err := os.Create(samplePath)
		if err != nil {
			rf.Close()
			return nil, err
		}
		fw.sampleFile = sf
		fw.sampleEnc = json.NewEncoder(sf)
	}
	return fw, nil
}

// Write logs a result and, if enabled, its samples.
func (f *FileWriter) Write(res scenario.Result) error {
	if err := f.resultEnc.Encode(res); err != nil {
		return err
	}
	if f.sampleEnc == nil {
		return nil
	}
	for _, s := range Samples(res) {
		if err := f.sampleEnc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch logs multiple results.
func (f *FileWriter) WriteBatch(results []scenario.Result) error {
	for _, r := range results {
		if err := f.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.resultFile != nil {
		if e := f.resultFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.sampleFile != nil {
		if e := f.sampleFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
