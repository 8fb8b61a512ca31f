package main

import (
	"context"

	"github.com/aretw0/flowant/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [flow]",
	Short: "Export the flow graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the flow. With --edit, the given
action tokens are applied and drawn as an overlay.`,
	Example: `  flowant graph support.json --edit "REMOVE_EDGE welcome faq" --edit "ADD_EDGE orders faq FAQ"`,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		edits, _ := cmd.Flags().GetStringArray("edit")
		return cli.RunGraph(context.Background(), cli.GraphOptions{
			InspectOptions: inspectOptions(cmd, args),
			Tokens:         edits,
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringArray("edit", nil, "Action token to overlay (repeatable)")
}
