package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Persona-driven document insight service",
	Long: `Docsift ingests PDF documents, indexes their text chunks, and answers
natural-language queries by scoring and re-ranking the most relevant sections.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
