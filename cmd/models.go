package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pders01/spotlight/internal/config"
	"github.com/spf13/cobra"
)

var modelsBackend string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available to the generation backend",
	Long: `List the models the local Ollama backend has installed, and mark the
configured default.

Examples:
  spotlight models
  spotlight models --backend cli`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)

	modelsCmd.Flags().StringVar(&modelsBackend, "backend", "", "Generation backend: api or cli (default from config)")
}

func runModels(cmd *cobra.Command, args []string) error {
	generator, err := newGenerator(modelsBackend)
	if err != nil {
		return err
	}

	names, err := generator.Models(cmd.Context())
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Printf("No models installed. Run: ollama pull %s\n", config.GetDefaultModel())
		return nil
	}

	defaultModel := config.GetDefaultModel()
	marker := color.New(color.FgGreen).Sprint("*")

	fmt.Printf("Available models (%d):\n", len(names))
	for _, name := range names {
		if name == defaultModel || name == defaultModel+":latest" {
			fmt.Printf("  %s %s (default)\n", marker, name)
		} else {
			fmt.Printf("    %s\n", name)
		}
	}

	return nil
}
