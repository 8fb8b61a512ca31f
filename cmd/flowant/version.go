package main

import (
	"fmt"

	"github.com/aretw0/flowant"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flowant",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flowant version %s\n", flowant.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
