// Package main provides the entry point for the company insight service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "company_insight",
	Short: "Company registration lookup and AI analysis service",
	Long:  "Company Insight looks up a company's registration record from a business-registry provider and generates an AI analysis report from it, via REST API or one-shot CLI.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
