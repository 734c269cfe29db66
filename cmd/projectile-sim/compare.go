package main

import (
	"time"

	"github.com/spf13/cobra"

	"projectile-sim/internal/config"
	"projectile-sim/internal/scenario"
)

var (
	sweepOut   outputOptions
	compareOut outputOptions
	planetsOut outputOptions
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare launch angles for the longest range",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := paramsFromFlags(cmd, appCfg.Defaults)
		if err != nil {
			return err
		}
		sweep := appCfg.Sweep
		fs := cmd.Flags()
		if fs.Changed("from") {
			sweep.FromDeg, _ = fs.GetFloat64("from")
		}
		if fs.Changed("to") {
			sweep.ToDeg, _ = fs.GetFloat64("to")
		}
		if fs.Changed("step") {
			sweep.StepDeg, _ = fs.GetFloat64("step")
		}
		res, err := scenario.NewRunner(appCfg).AngleSweep(cmd.Context(), p.InitialSpeed, sweep)
		if err != nil {
			return err
		}
		return emit(cmd, sweepOut, scenario.Result{Kind: scenario.KindSweep, Timestamp: time.Now().UTC(), Sweep: res})
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a launch with and without air resistance",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := paramsFromFlags(cmd, appCfg.Defaults)
		if err != nil {
			return err
		}
		res, err := scenario.NewRunner(appCfg).DragComparison(cmd.Context(), p.InitialSpeed, p.LaunchAngleDeg)
		if err != nil {
			return err
		}
		return emit(cmd, compareOut, scenario.Result{Kind: scenario.KindDrag, Timestamp: time.Now().UTC(), Drag: res})
	},
}

var planetsCmd = &cobra.Command{
	Use:   "planets",
	Short: "Compare a launch under the configured planets' gravity",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := paramsFromFlags(cmd, appCfg.Defaults)
		if err != nil {
			return err
		}
		planets := appCfg.Planets
		if names, _ := cmd.Flags().GetStringSlice("only"); len(names) > 0 {
			planets = filterPlanets(planets, names)
		}
		res, err := scenario.NewRunner(appCfg).PlanetComparison(cmd.Context(), p.InitialSpeed, p.LaunchAngleDeg, planets)
		if err != nil {
			return err
		}
		return emit(cmd, planetsOut, scenario.Result{Kind: scenario.KindPlanets, Timestamp: time.Now().UTC(), Planets: res})
	},
}

func filterPlanets(planets []config.Planet, names []string) []config.Planet {
	var out []config.Planet
	for _, n := range names {
		for _, p := range planets {
			if p.Name == n {
				out = append(out, p)
			}
		}
	}
	return out
}

func init() {
	sweepCmd.Flags().Float64("speed", 0, "Initial speed (m/s)")
	sweepCmd.Flags().Float64("from", 0, "First angle (degrees)")
	sweepCmd.Flags().Float64("to", 0, "Last angle (degrees)")
	sweepCmd.Flags().Float64("step", 0, "Angle step (degrees)")
	addOutputFlags(sweepCmd, &sweepOut)

	compareCmd.Flags().Float64("speed", 0, "Initial speed (m/s)")
	compareCmd.Flags().Float64("angle", 0, "Launch angle (degrees)")
	addOutputFlags(compareCmd, &compareOut)

	planetsCmd.Flags().Float64("speed", 0, "Initial speed (m/s)")
	planetsCmd.Flags().Float64("angle", 0, "Launch angle (degrees)")
	planetsCmd.Flags().StringSlice("only", nil, "Restrict to these planet names")
	addOutputFlags(planetsCmd, &planetsOut)
}
