package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/dateq/internal/cli"
)

// addSearchFlags registers the search-tuning flags shared by the
// commands that run searches.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().String("operators", "", "Operator palette: 'basic' or 'extended'")
	cmd.Flags().Bool("factorial", false, "Also try fact(n) for single-digit groups")
	cmd.Flags().Bool("deep", false, "Search up to the maximum number of groups")
	cmd.Flags().Float64("tolerance", 0, "Value-matching tolerance (0 uses the default)")
	cmd.Flags().Int("workers", 0, "Concurrent partition searches (0 uses all CPUs)")
	cmd.Flags().Bool("no-cache", false, "Skip the result cache even when configured")
}

// gatherRunOptions reads the shared flags. Flags not registered on cmd
// read back as their zero values.
func gatherRunOptions(cmd *cobra.Command) cli.RunOptions {
	var opts cli.RunOptions
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	opts.Operators, _ = cmd.Flags().GetString("operators")
	opts.Factorial, _ = cmd.Flags().GetBool("factorial")
	opts.Deep, _ = cmd.Flags().GetBool("deep")
	opts.Tolerance, _ = cmd.Flags().GetFloat64("tolerance")
	opts.Workers, _ = cmd.Flags().GetInt("workers")
	opts.NoCache, _ = cmd.Flags().GetBool("no-cache")
	opts.Sort, _ = cmd.Flags().GetString("sort")
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	return opts
}
