package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dateq",
	Short: "dateq finds arithmetic identities hidden in dates",
	Long: `dateq extracts the digits of a date and searches every way of splitting
them into two expressions with the same value, like 09/05/2005 giving
0 * 9 + 0 + 5 = 2 * 0 + 0 + 5.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default dateq.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
