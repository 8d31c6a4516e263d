package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pders01/spotlight/internal/config"
	"github.com/pders01/spotlight/internal/github"
	"github.com/pders01/spotlight/internal/models"
	"github.com/pders01/spotlight/internal/ollama"
	"github.com/pders01/spotlight/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	genFrom      string
	genTo        string
	genSpotlight []string
	genModel     string
	genBackend   string
	genSamples   string
	genDryRun    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <username>",
	Short: "Generate a social post from GitHub activity",
	Long: `Run the full pipeline: fetch activity, split it into spotlight and
supporting projects, build a generation prompt, and send it to the local
Ollama backend.

Projects named with --spotlight get a detailed paragraph in the post; all
remaining active repositories are mentioned briefly. With no --spotlight,
everything is summarized tersely.

Examples:
  spotlight generate alice --spotlight alice/tool
  spotlight generate alice --from 2024-01-01 --to 2024-01-31 --spotlight tool,webapp
  spotlight generate alice --spotlight tool --model mistral --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genFrom, "from", "", "Start date, inclusive (YYYY-MM-DD, default: first of this month)")
	generateCmd.Flags().StringVar(&genTo, "to", "", "End date, inclusive (YYYY-MM-DD, default: today)")
	generateCmd.Flags().StringSliceVar(&genSpotlight, "spotlight", []string{}, "Repositories to highlight in detail (name or owner/name)")
	generateCmd.Flags().StringVar(&genModel, "model", "", "Generation model (default from config)")
	generateCmd.Flags().StringVar(&genBackend, "backend", "", "Generation backend: api or cli (default from config)")
	generateCmd.Flags().StringVar(&genSamples, "samples", "", "File with tone-reference posts, separated by lines containing only ---")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Print the built prompt instead of generating")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	username := args[0]
	ctx := cmd.Context()

	window, err := parseWindow(genFrom, genTo)
	if err != nil {
		return err
	}

	client := github.NewClient(config.GetAPIBaseURL(), config.GetToken(), config.GetCacheTTL(), newLogger())

	fmt.Fprintf(os.Stderr, "Fetching GitHub activity for %s...\n", username)
	activity, err := client.FetchActivity(ctx, username, window)
	if err != nil {
		return err
	}
	if len(activity) == 0 {
		fmt.Printf("No activity found for %s between %s - nothing to post about.\n", username, window)
		return nil
	}

	spotlightRepos, otherRepos, err := models.Partition(activity, genSpotlight)
	if err != nil {
		return err
	}

	samples, err := loadSamples(genSamples)
	if err != nil {
		return err
	}

	promptText := prompt.Build(prompt.Input{
		Username:    username,
		Window:      window,
		Spotlight:   spotlightRepos,
		Other:       otherRepos,
		SamplePosts: samples,
		Platform:    config.GetPlatform(),
		MaxCommits:  config.GetMaxCommits(),
	})

	if genDryRun {
		fmt.Println(promptText)
		return nil
	}

	generator, err := newGenerator(genBackend)
	if err != nil {
		return err
	}

	model, err := resolveModel(ctx, generator, genModel)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Generating post with model %s...\n", model)
	raw, err := generator.Generate(ctx, model, promptText)
	if err != nil {
		// The prompt is rebuilt deterministically, so a failed
		// generation costs nothing but the retry itself.
		fmt.Fprintln(os.Stderr, "Tip: re-run when the backend is back, or use --dry-run to inspect the prompt.")
		return err
	}

	post := prompt.Clean(raw)

	color.New(color.FgGreen, color.Bold).Println("\nGenerated post:")
	fmt.Println(strings.Repeat("─", 40))
	fmt.Println(post)
	fmt.Println(strings.Repeat("─", 40))

	return nil
}

// newGenerator picks the generation backend: the Ollama HTTP API (default)
// or the local ollama executable. The API server is probed up front so a
// stopped backend surfaces before the generate call.
func newGenerator(backend string) (ollama.Generator, error) {
	if backend == "" {
		backend = config.GetBackend()
	}

	switch backend {
	case "cli":
		return ollama.NewRunner(""), nil
	case "", "api":
		ollamaURL := config.GetOllamaURL()
		if !ollama.IsAvailable(ollamaURL) {
			return nil, &ollama.BackendUnavailableError{
				Message: fmt.Sprintf("no ollama server responding at %s - start it with: ollama serve", ollamaURL),
			}
		}
		return ollama.NewClient(ollamaURL)
	default:
		return nil, &models.ValidationError{Reason: fmt.Sprintf("unknown backend %q (use api or cli)", backend)}
	}
}

// resolveModel checks the requested model against what the backend has
// installed. A missing model falls back to the first installed one with a
// warning; an empty backend is an error up front rather than mid-generation.
func resolveModel(ctx context.Context, generator ollama.Generator, flagModel string) (string, error) {
	model := flagModel
	if model == "" {
		model = config.GetDefaultModel()
	}

	installed, err := generator.Models(ctx)
	if err != nil {
		return "", err
	}
	if len(installed) == 0 {
		return "", &ollama.GenerationError{
			Message: fmt.Sprintf("no models installed - run: ollama pull %s", model),
		}
	}

	for _, name := range installed {
		if name == model || strings.HasPrefix(name, model+":") {
			return model, nil
		}
	}

	fmt.Fprintf(os.Stderr, "Warning: model %q not found, using %q instead\n", model, installed[0])
	return installed[0], nil
}

// loadSamples reads tone-reference posts from a file where posts are
// separated by lines containing only "---". Falls back to configured
// samples when no file is given.
func loadSamples(path string) ([]string, error) {
	if path == "" {
		return config.GetSamplePosts(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read samples file: %w", err)
	}

	var samples []string
	for _, block := range strings.Split(string(data), "\n---\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			samples = append(samples, block)
		}
	}
	return samples, nil
}
