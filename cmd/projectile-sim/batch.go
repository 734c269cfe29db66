package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"projectile-sim/internal/scenario"
)

var (
	batchFile string
	batchName string
	batchOut  outputOptions
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a batch of scenarios",
	Long:  "batch runs every scenario of a YAML batch file, or the built-in demonstration batch when no file is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		b := scenario.BuiltIn(appCfg.Defaults)
		if batchFile != "" {
			var err error
			if b, err = scenario.Load(batchFile, appCfg.Defaults); err != nil {
				return err
			}
		}
		if batchName != "" {
			s, ok := b.Lookup(batchName)
			if !ok {
				return fmt.Errorf("batch %q has no scenario %q", b.Name, batchName)
			}
			b = &scenario.Batch{Name: b.Name, Description: b.Description, Scenarios: []scenario.Scenario{s}}
		}
		results, err := scenario.NewRunner(appCfg).RunBatch(cmd.Context(), b)
		if err != nil {
			return err
		}
		return emit(cmd, batchOut, results...)
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Path to a scenario batch YAML")
	batchCmd.Flags().StringVar(&batchName, "name", "", "Run only the named scenario")
	addOutputFlags(batchCmd, &batchOut)
}
