package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host    string
	verbose bool
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "matchmaker-cli",
	Short: "A CLI to interact with the matchmaker server",
	Long: `A command-line interface for making requests to the various endpoints
of the matchmaker application.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Ask the server to log this request at debug level")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Run cycles without publishing events or posting to Slack")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
