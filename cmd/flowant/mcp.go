package main

import (
	"context"

	"github.com/aretw0/flowant/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts Flowant as an MCP Server.
This allows AI agents to optimize flows and inspect their edit space as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.RunMCP(sigCtx, cli.ServeOptions{
			ConfigPath: configPath,
			Overrides:  overrides(cmd),
			Port:       port,
			Transport:  transport,
			Debug:      debug,
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	addRunFlags(mcpCmd.Flags())
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
