package main

import (
	"github.com/aretw0/flowant/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addRunFlags registers the flags that override the run configuration.
func addRunFlags(flags *pflag.FlagSet) {
	flags.Int("iterations", 0, "Number of colony iterations")
	flags.Int("ants", 0, "Ants per iteration")
	flags.Int("budget", 0, "Maximum number of edits per candidate")
	flags.Int("workers", 0, "Concurrent oracle evaluations")
	flags.Int("patience", 0, "Stop after this many iterations without improvement (0 disables)")
	flags.Uint64("seed", 0, "Random seed (0 picks one)")
	flags.String("fitness", "", "Fitness function: reachability, similarity or weighted")
	flags.String("reference", "", "Reference flow for the similarity fitness")
	flags.String("store", "", "Result store: memory or redis")
	flags.String("redis", "", "Redis address for the redis store")
}

// overrides collects the run flags the user actually set.
func overrides(cmd *cobra.Command) cli.Overrides {
	flags := cmd.Flags()
	var o cli.Overrides
	o.Iterations = changedInt(flags, "iterations")
	o.Ants = changedInt(flags, "ants")
	o.Budget = changedInt(flags, "budget")
	o.Workers = changedInt(flags, "workers")
	o.Patience = changedInt(flags, "patience")
	if flags.Changed("seed") {
		v, _ := flags.GetUint64("seed")
		o.Seed = &v
	}
	o.Fitness = changedString(flags, "fitness")
	o.Reference = changedString(flags, "reference")
	o.StoreKind = changedString(flags, "store")
	o.StoreAddr = changedString(flags, "redis")
	return o
}

func changedInt(flags *pflag.FlagSet, name string) *int {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetInt(name)
	return &v
}

func changedString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func inspectOptions(cmd *cobra.Command, args []string) cli.InspectOptions {
	configPath, _ := cmd.Flags().GetString("config")
	root, _ := cmd.Flags().GetString("root")
	debug, _ := cmd.Flags().GetBool("debug")
	format, _ := cmd.Flags().GetString("format")
	return cli.InspectOptions{
		Path:       flowPath(args),
		Root:       root,
		ConfigPath: configPath,
		Format:     format,
		Debug:      debug,
	}
}
