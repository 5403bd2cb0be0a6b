// Package main provides the entry point for the negotiation experiment CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "negotiation_agent",
	Short: "Negotiation bias experiment harness",
	Long:  "Runs AI negotiation experiments across demographic and legal-framing prompt variants, extracts willingness-to-pay and offer from each reply, and writes tabular results for statistical analysis.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
