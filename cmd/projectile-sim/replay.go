package main

import (
	"os"

	"github.com/spf13/cobra"

	"projectile-sim/internal/logging"
	"projectile-sim/internal/report"
)

var (
	replayInput string
	replayOut   outputOptions
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a result log file",
	Long:  "replay re-renders results from a JSONL log written with --log-file, optionally exporting them again.",
	RunE: func(cmd *cobra.Command, args []string) error {
		replayOut.color = isTerminal(os.Stdout)
		writer, cleanup, err := newWriters(cmd.Context(), appCfg, replayOut, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer cleanup()
		n, err := report.ReplayLogFile(replayInput, writer)
		logging.FromContext(cmd.Context()).Info("replay finished", "input", replayInput, "results", n)
		return err
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to result log file")
	addOutputFlags(replayCmd, &replayOut)
	replayCmd.MarkFlagRequired("input")
}
