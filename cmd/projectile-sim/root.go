package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"projectile-sim/internal/config"
	"projectile-sim/internal/logging"
)

var (
	configPath string
	schemaPath string
	logLevel   string

	// appCfg is loaded once per invocation by the root pre-run hook.
	appCfg *config.SimulationConfig
)

var rootCmd = &cobra.Command{
	Use:           "projectile-sim",
	Short:         "Projectile motion simulation toolkit",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: "projectile-sim integrates 2-D projectile trajectories with or without air resistance, " +
		"compares launch angles, drag and planetary gravity, and serves results over HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, schemaPath)
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		log := logging.NewWithLevel(os.Stderr, level)
		cmd.SetContext(logging.NewContext(cmd.Context(), log))
		appCfg = cfg
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return menuCmd.RunE(cmd, args)
	},
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to simulation configuration YAML (built-in defaults when empty)")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Path to CUE schema file (embedded schema when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.Flags().BoolVar(&menuPlain, "plain", false, "Use the line-oriented menu even on a terminal")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(planetsCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dashboardCmd)
}
