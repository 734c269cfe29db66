package main

import (
	"github.com/spf13/cobra"

	"projectile-sim/internal/admin"
	"projectile-sim/internal/metrics"
	"projectile-sim/internal/scenario"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulator over HTTP",
	Long:  "serve exposes JSON endpoints, a WebSocket sample stream, Prometheus metrics and a small web page.",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := appCfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		rec := metrics.NewRecorder()
		runner := scenario.NewRunner(appCfg)
		runner.Observer = rec
		return admin.NewServer(runner, rec).Start(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to server.addr from config)")
}
