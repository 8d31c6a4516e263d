package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "spotlight",
	Short: "Turn recent GitHub activity into a ready-to-post social media update",
	Long: `spotlight fetches your recent GitHub activity (repositories, commits,
READMEs) for a date range, lets you pick which projects to spotlight, and
feeds the result to a locally running Ollama model to draft a social post.

Typical flow:
  spotlight fetch alice --from 2024-01-01 --to 2024-01-31
  spotlight generate alice --from 2024-01-01 --to 2024-01-31 --spotlight alice/tool`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/spotlight/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func initConfig() {
	// A local .env is honored for GITHUB_TOKEN etc., like the usual
	// dotenv workflow. Missing file is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "spotlight")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("github.api_url", "https://api.github.com")
	viper.SetDefault("github.cache_ttl", "10m")
	viper.SetDefault("ollama.url", "http://localhost:11434")
	viper.SetDefault("generation.model", "llama3")
	viper.SetDefault("generation.backend", "api")
	viper.SetDefault("prompt.platform", "LinkedIn")
	viper.SetDefault("prompt.max_commits", 5)

	// The token never has to live in the config file.
	_ = viper.BindEnv("github.token", "GITHUB_TOKEN", "GITHUB_PAT")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the slog logger handed to the GitHub client. Quiet by
// default; --verbose surfaces debug output on stderr.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
