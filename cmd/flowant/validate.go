package main

import (
	"context"

	"github.com/aretw0/flowant/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flow]",
	Short: "Check that a flow can be optimized",
	Long: `Loads the flow, reports unreachable states, dead ends and unlabelled
transitions, and fails when the flow offers no legal edit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := inspectOptions(cmd, args)
		watch, _ := cmd.Flags().GetBool("watch")
		if !watch {
			return cli.RunValidate(context.Background(), opts)
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()
		return cli.WatchValidate(sigCtx, opts)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text or json")
	validateCmd.Flags().BoolP("watch", "w", false, "Validate again whenever a document of the flow directory changes")
}
