package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"projectile-sim/internal/config"
	"projectile-sim/internal/report"
	"projectile-sim/internal/scenario"
	"projectile-sim/internal/trajectory"
)

func sampleResult(t *testing.T) scenario.Result {
	t.Helper()
	run, err := scenario.NewRunner(config.Default()).Single(context.Background(), trajectory.DefaultParams())
	if err != nil {
		t.Fatalf("Single: %v", err)
	}
	return scenario.Result{Kind: scenario.KindSingle, Timestamp: time.Unix(0, 0).UTC(), Run: run}
}

func TestNewWritersText(t *testing.T) {
	var buf bytes.Buffer
	w, cleanup, err := newWriters(context.Background(), config.Default(), outputOptions{format: "text"}, &buf)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := w.(*report.TextWriter); !ok {
		t.Fatalf("expected *report.TextWriter, got %T", w)
	}
	if err := w.Write(sampleResult(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "Range: 254.56 m") {
		t.Fatalf("unexpected text output")
	}
}

func TestNewWritersJSON(t *testing.T) {
	w, cleanup, err := newWriters(context.Background(), config.Default(), outputOptions{format: "json"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := w.(*report.JSONWriter); !ok {
		t.Fatalf("expected *report.JSONWriter, got %T", w)
	}
}

func TestNewWritersUnknownFormat(t *testing.T) {
	if _, _, err := newWriters(context.Background(), config.Default(), outputOptions{format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestNewWritersPrintOnlySkipsGreptime(t *testing.T) {
	cfg := config.Default()
	cfg.Greptime.Endpoint = "localhost:4001"
	w, cleanup, err := newWriters(context.Background(), cfg, outputOptions{format: "json", printOnly: true}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := w.(*report.JSONWriter); !ok {
		t.Fatalf("expected *report.JSONWriter, got %T", w)
	}
}

func TestNewWritersLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "results.jsonl")
	samplePath := filepath.Join(dir, "samples.jsonl")
	o := outputOptions{format: "json", logFile: logPath, samplesFile: samplePath}
	w, cleanup, err := newWriters(context.Background(), config.Default(), o, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	if _, ok := w.(*report.MultiWriter); !ok {
		t.Fatalf("expected *report.MultiWriter, got %T", w)
	}
	res := sampleResult(t)
	if err := w.Write(res); err != nil {
		t.Fatalf("Write: %v", err)
	}
	cleanup()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Count(string(data), "\n") != 1 {
		t.Fatalf("expected one logged result")
	}
	data, err = os.ReadFile(samplePath)
	if err != nil {
		t.Fatalf("read samples: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != res.Run.Trajectory.Len() {
		t.Fatalf("expected %d sample lines, got %d", res.Run.Trajectory.Len(), got)
	}
}

func TestParamsFromFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addParamFlags(cmd)
	if err := cmd.ParseFlags([]string{"--speed", "30", "--drag"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	base := trajectory.DefaultParams()
	p, err := paramsFromFlags(cmd, base)
	if err != nil {
		t.Fatalf("paramsFromFlags: %v", err)
	}
	if p.InitialSpeed != 30 || !p.DragEnabled {
		t.Fatalf("flags not applied: %+v", p)
	}
	if p.LaunchAngleDeg != base.LaunchAngleDeg || p.Gravity != base.Gravity {
		t.Fatalf("unset flags overrode defaults: %+v", p)
	}
}

func TestFilterPlanets(t *testing.T) {
	got := filterPlanets(config.DefaultPlanets(), []string{"Mars", "Pluto", "Moon"})
	if len(got) != 2 || got[0].Name != "Mars" || got[1].Name != "Moon" {
		t.Fatalf("unexpected planets: %+v", got)
	}
}
