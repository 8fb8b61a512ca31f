package main

import (
	"context"
	"os"

	"github.com/aretw0/flowant"
	"github.com/aretw0/flowant/internal/cli"
	"github.com/aretw0/flowant/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// optimizeCmd represents the optimize command
var optimizeCmd = &cobra.Command{
	Use:   "optimize [flow]",
	Short: "Search for the edits that best improve a flow",
	Long: `Runs the ant colony over the edit space of the flow and prints the best
sequence of edits found. Press Ctrl+C to stop early: the best candidate so far
is still reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		root, _ := cmd.Flags().GetString("root")
		debug, _ := cmd.Flags().GetBool("debug")
		format, _ := cmd.Flags().GetString("format")
		mermaid, _ := cmd.Flags().GetString("mermaid")
		quiet, _ := cmd.Flags().GetBool("quiet")

		styled := tui.IsTerminal(os.Stdout)
		if !quiet && format == cli.FormatText && styled {
			tui.PrintBanner(os.Stderr, flowant.Version)
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.RunOptimize(sigCtx, cli.OptimizeOptions{
			Path:       flowPath(args),
			Root:       root,
			ConfigPath: configPath,
			Overrides:  overrides(cmd),
			Format:     format,
			MermaidOut: mermaid,
			Debug:      debug,
			Quiet:      quiet,
			Styled:     styled,
		})
	},
}

func init() {
	rootCmd.AddCommand(optimizeCmd)

	addRunFlags(optimizeCmd.Flags())
	optimizeCmd.Flags().StringP("format", "f", cli.FormatText, "Report format: text, markdown or json")
	optimizeCmd.Flags().String("mermaid", "", "Write a Mermaid diagram of the edits to this file")
	optimizeCmd.Flags().BoolP("quiet", "q", false, "Only print the report")
}
