package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/culturegraph/reconcile/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Museum cultural heritage reconciliation service",
	Long:  "Matches museum, artist, and artifact names against a CSV-loaded dataset over the reconciliation API.",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reconcile %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(versionCmd)
}
