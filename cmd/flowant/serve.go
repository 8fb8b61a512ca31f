package main

import (
	"context"
	"os"

	"github.com/aretw0/flowant"
	"github.com/aretw0/flowant/internal/cli"
	"github.com/aretw0/flowant/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes optimization runs over a JSON API: start runs, follow their
progress as Server-Sent Events and fetch stored results. Prometheus metrics
are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		port, _ := cmd.Flags().GetInt("port")

		tui.PrintBanner(os.Stderr, flowant.Version)

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.RunServe(sigCtx, cli.ServeOptions{
			ConfigPath: configPath,
			Overrides:  overrides(cmd),
			Port:       port,
			Debug:      debug,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addRunFlags(serveCmd.Flags())
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
