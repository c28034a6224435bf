package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/dateq/internal/cli"
)

// interactiveCmd represents the interactive command
var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"repl"},
	Short:   "Start the interactive prompt",
	Long:    `Reads dates line by line and prints the equations found in each.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := gatherRunOptions(cmd)
		opts.Headless, _ = cmd.Flags().GetBool("headless")

		if err := cli.RunInteractive(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)

	addSearchFlags(interactiveCmd)
	interactiveCmd.Flags().String("sort", "", "Equation order: value, value-desc, length, length-desc or alpha")
	interactiveCmd.Flags().Int("limit", 0, "Maximum equations to print per result")
	interactiveCmd.Flags().Bool("headless", false, "No banner, no prompts, no markdown rendering")

	// Make 'interactive' the default if no command is provided
	rootCmd.Run = interactiveCmd.Run
}
