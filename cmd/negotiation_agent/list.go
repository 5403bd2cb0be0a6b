package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/negotiation-harness/internal/observability"
)

var listCommand = &cobra.Command{
	Use:   "list",
	Short: "List the available parameters and prompt variants",
	Run: func(_ *cobra.Command, _ []string) {
		observability.NewPrinter(os.Stdout).PrintCatalog()
	},
}

func init() {
	rootCmd.AddCommand(listCommand)
}
