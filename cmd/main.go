package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trading-journal",
	Short: "A CLI for the IDX trading journal services",
	Long: `Trading Journal records IDX stock trades, reconciles open positions,
keeps a portfolio summary and syncs everything to a remote store with an
offline pending queue.

Run the API with: journal-service serve -c configs/config-journal.yaml
Apply the schema with: migrate up -c configs/config-journal.yaml`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
