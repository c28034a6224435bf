package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/dateq/internal/cli"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [date]",
	Short: "Search one date for equations",
	Long: `Runs a single search and prints the equations found. The date can be
any string; everything except its digits is ignored.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := gatherRunOptions(cmd)
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Output, _ = cmd.Flags().GetString("output")

		if err := cli.ExecuteSearch(opts, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	addSearchFlags(searchCmd)
	searchCmd.Flags().String("sort", "", "Equation order: value, value-desc, length, length-desc or alpha")
	searchCmd.Flags().Int("limit", 0, "Maximum equations to print (0 prints all)")
	searchCmd.Flags().StringP("format", "f", "text", "Output format: text, csv or json")
	searchCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}
