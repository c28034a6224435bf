package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/dateq"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dateq",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dateq version %s\n", strings.TrimSpace(dateq.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
