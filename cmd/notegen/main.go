// Package main provides the entry point for the LinkedIn note generator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "notegen",
	Short: "LinkedIn connection-note generator",
	Long:  "notegen extracts profile facts from LinkedIn profile pages and synthesizes short, constraint-checked connection notes via an OpenAI-compatible endpoint, with a deterministic template fallback.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
