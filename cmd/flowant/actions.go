package main

import (
	"context"

	"github.com/aretw0/flowant/internal/cli"
	"github.com/spf13/cobra"
)

var actionsCmd = &cobra.Command{
	Use:   "actions [flow]",
	Short: "List the edits the optimizer would consider",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := inspectOptions(cmd, args)
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			opts.Seed = &seed
		}
		return cli.RunActions(context.Background(), opts)
	},
}

func init() {
	rootCmd.AddCommand(actionsCmd)
	actionsCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text or json")
	actionsCmd.Flags().Uint64("seed", 0, "Label seed (0 picks one and reports it); pass it to optimize to get the same labels")
}
