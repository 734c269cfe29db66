package main

import (
	"os"

	"github.com/spf13/cobra"

	"projectile-sim/internal/report"
	"projectile-sim/internal/scenario"
	"projectile-sim/internal/shell"
)

var menuPlain bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive simulator menu",
	Long:  "menu opens the interactive simulator. A full-screen TUI is used on terminals, the numbered line menu otherwise.",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := scenario.NewRunner(appCfg)
		opts := report.TextOptions{
			Color:        isTerminal(os.Stdout),
			CanvasWidth:  appCfg.Canvas.Width,
			CanvasHeight: appCfg.Canvas.Height,
		}
		if !menuPlain && isTerminal(os.Stdin) && isTerminal(os.Stdout) {
			return shell.RunTUI(cmd.Context(), runner, opts)
		}
		return shell.New(runner, cmd.InOrStdin(), cmd.OutOrStdout(), opts).Run(cmd.Context())
	},
}

func init() {
	menuCmd.Flags().BoolVar(&menuPlain, "plain", false, "Use the line-oriented menu even on a terminal")
}
