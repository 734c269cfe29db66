package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"projectile-sim/internal/config"
	"projectile-sim/internal/logging"
	"projectile-sim/internal/report"
	"projectile-sim/internal/scenario"
)

// outputOptions selects the result sinks of a command.
type outputOptions struct {
	format      string
	color       bool
	noColor     bool
	showData    bool
	logFile     string
	samplesFile string
	printOnly   bool
}

func addOutputFlags(cmd *cobra.Command, o *outputOptions) {
	cmd.Flags().StringVarP(&o.format, "output", "o", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "Disable ANSI colors in text output")
	cmd.Flags().BoolVar(&o.showData, "show-data", false, "Print sampled trajectory points")
	cmd.Flags().StringVar(&o.logFile, "log-file", "", "Also append results to this JSONL file")
	cmd.Flags().StringVar(&o.samplesFile, "samples-file", "", "With --log-file, also write every sample to this JSONL file")
	cmd.Flags().BoolVar(&o.printOnly, "print-only", false, "Never export to GreptimeDB even if an endpoint is configured")
}

func textOptions(cfg *config.SimulationConfig, o outputOptions) report.TextOptions {
	return report.TextOptions{
		Color:        o.color && !o.noColor,
		ShowData:     o.showData,
		CanvasWidth:  cfg.Canvas.Width,
		CanvasHeight: cfg.Canvas.Height,
	}
}

// newWriters builds the writer chain for o. The cleanup function closes any
// files it opened.
func newWriters(ctx context.Context, cfg *config.SimulationConfig, o outputOptions, out io.Writer) (report.Writer, func(), error) {
	cleanup := func() {}
	log := logging.FromContext(ctx)

	var writer report.Writer
	switch o.format {
	case "text", "":
		writer = report.NewTextWriter(out, textOptions(cfg, o))
	case "json":
		writer = report.NewJSONWriter(out, false)
	default:
		return nil, nil, fmt.Errorf("unknown output format %q", o.format)
	}

	writers := []report.Writer{writer}
	if !o.printOnly && cfg.Greptime.Endpoint != "" {
		gw, err := report.NewGreptimeDBWriter(ctx, cfg.Greptime)
		if err != nil {
			return nil, nil, err
		}
		log.Info("exporting to GreptimeDB", "endpoint", cfg.Greptime.Endpoint, "table", cfg.Greptime.Table)
		writers = append(writers, gw)
	}
	if o.logFile != "" {
		fw, err := report.NewFileWriter(o.logFile, o.samplesFile)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { fw.Close() }
		writers = append(writers, fw)
	}
	if len(writers) == 1 {
		return writer, cleanup, nil
	}
	return report.NewMultiWriter(writers...), cleanup, nil
}

// emit sends results through the writers selected by o.
func emit(cmd *cobra.Command, o outputOptions, results ...scenario.Result) error {
	o.color = isTerminal(os.Stdout)
	w, cleanup, err := newWriters(cmd.Context(), appCfg, o, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer cleanup()
	return report.WriteAll(w, results)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
