// Package cmd provides the command-line interface for goat.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "goat",
	Short: "Goat CLI tool can perform common tasks related to working with " +
		"ranking board sessions.",
	Long: `Goat CLI tool can perform common tasks related to working with ` +
		`ranking board sessions. Currently, it supports replaying command ` +
		`scripts against a fresh session, journaling operations to SQLite, ` +
		`and serving a live session monitor.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
