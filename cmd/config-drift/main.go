package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "config-drift",
	Short: "Settings drift checker for code reviews",
	Long: `config-drift compares the settings schema of a repository between two
revisions and reports added, removed and changed settings alongside the
version transition, formatted for posting as review feedback.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
