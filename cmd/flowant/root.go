package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flowant",
	Short: "Flowant optimizes chatbot dialogue flows with an ant colony",
	Long: `Flowant searches for short sequences of graph edits (removing states or
transitions, adding shortcuts) that improve a dialogue flow according to a
fitness function.

A flow is either a JSON/YAML scenario export or a directory of Markdown
documents with front matter.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Run configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("root", "", "Entry document of a flow directory (default: start, main, index or the directory name)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// flowPath returns the flow argument, or the current directory.
func flowPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
