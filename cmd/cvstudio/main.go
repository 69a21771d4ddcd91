// Package main provides the entry point for the cv-studio HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvstudio",
	Short: "CV Studio HTTP API server",
	Long:  "CV Studio stores structured CV documents and drafts their content with Gemini: summaries, bullet points, skill suggestions, whole initial CVs and per-job tailoring via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
