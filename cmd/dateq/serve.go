package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/dateq/internal/cli"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the search engine in server mode, exposing a JSON API over HTTP
with Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.ServeOptions{RunOptions: gatherRunOptions(cmd)}
		opts.Addr, _ = cmd.Flags().GetString("addr")

		if err := cli.ExecuteServe(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	addSearchFlags(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides the config file)")
}
