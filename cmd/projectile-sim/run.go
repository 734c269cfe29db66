package main

import (
	"time"

	"github.com/spf13/cobra"

	"projectile-sim/internal/logging"
	"projectile-sim/internal/report"
	"projectile-sim/internal/scenario"
	"projectile-sim/internal/trajectory"
)

var runOut outputOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a single launch",
	Long:  "run integrates one trajectory, analytically without drag or numerically with it, and prints its metrics and plot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := paramsFromFlags(cmd, appCfg.Defaults)
		if err != nil {
			return err
		}
		runner := scenario.NewRunner(appCfg)
		run, err := runner.Single(cmd.Context(), p)
		if err != nil {
			return err
		}
		logging.FromContext(cmd.Context()).Info("run finished", "id", run.ID, "mode", run.Trajectory.Mode, "summary", report.Summary(run.Metrics))
		return emit(cmd, runOut, scenario.Result{Kind: scenario.KindSingle, Timestamp: time.Now().UTC(), Run: run})
	},
}

// addParamFlags registers launch parameter flags; unset flags keep the configured defaults.
func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("speed", 0, "Initial speed (m/s)")
	cmd.Flags().Float64("angle", 0, "Launch angle (degrees)")
	cmd.Flags().Float64("gravity", 0, "Gravitational acceleration (m/s²)")
	cmd.Flags().Bool("drag", false, "Enable air resistance")
	cmd.Flags().Float64("cd", 0, "Drag coefficient")
	cmd.Flags().Float64("mass", 0, "Projectile mass (kg)")
}

func paramsFromFlags(cmd *cobra.Command, base trajectory.Params) (trajectory.Params, error) {
	p := base
	fs := cmd.Flags()
	floats := []struct {
		name string
		dst  *float64
	}{
		{"speed", &p.InitialSpeed},
		{"angle", &p.LaunchAngleDeg},
		{"gravity", &p.Gravity},
		{"cd", &p.DragCoefficient},
		{"mass", &p.Mass},
	}
	for _, f := range floats {
		if fs.Lookup(f.name) == nil || !fs.Changed(f.name) {
			continue
		}
		v, err := fs.GetFloat64(f.name)
		if err != nil {
			return p, err
		}
		*f.dst = v
	}
	if fs.Lookup("drag") != nil && fs.Changed("drag") {
		v, err := fs.GetBool("drag")
		if err != nil {
			return p, err
		}
		p.DragEnabled = v
	}
	return p, nil
}

func init() {
	addParamFlags(runCmd)
	addOutputFlags(runCmd, &runOut)
}
