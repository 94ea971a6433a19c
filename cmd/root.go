// Package cmd implements the minicouncil CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "minicouncil",
	Short: "minicouncil - a tool-using AI agent",
	Long:  "minicouncil - a conversational agent that uses local tools to accomplish tasks",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(toolsCmd)
}
