package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alpkeskin/gotoon"
	"github.com/fatih/color"
	"github.com/pders01/spotlight/internal/config"
	"github.com/pders01/spotlight/internal/github"
	"github.com/pders01/spotlight/internal/models"
	"github.com/spf13/cobra"
)

var (
	fetchFrom string
	fetchTo   string
	fetchJSON bool
	fetchToon bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <username>",
	Short: "Fetch GitHub activity for a user and date range",
	Long: `Fetch a user's repositories with commits inside the date range, along with
their README summaries, so you can decide which projects to spotlight.

Defaults to the current month when no range is given.

Examples:
  spotlight fetch alice
  spotlight fetch alice --from 2024-01-01 --to 2024-01-31
  spotlight fetch alice --json
  spotlight fetch alice --toon`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchFrom, "from", "", "Start date, inclusive (YYYY-MM-DD, default: first of this month)")
	fetchCmd.Flags().StringVar(&fetchTo, "to", "", "End date, inclusive (YYYY-MM-DD, default: today)")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "Output as JSON")
	fetchCmd.Flags().BoolVar(&fetchToon, "toon", false, "Output in LLM-friendly toon format")
}

func runFetch(cmd *cobra.Command, args []string) error {
	username := args[0]

	window, err := parseWindow(fetchFrom, fetchTo)
	if err != nil {
		return err
	}

	client := github.NewClient(config.GetAPIBaseURL(), config.GetToken(), config.GetCacheTTL(), newLogger())

	activity, err := client.FetchActivity(cmd.Context(), username, window)
	if err != nil {
		return err
	}

	if len(activity) == 0 {
		fmt.Printf("No activity found for %s between %s.\n", username, window)
		return nil
	}

	if fetchJSON {
		output, err := json.MarshalIndent(activity, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if fetchToon {
		output, err := gotoon.Encode(activity)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	header := color.New(color.Bold)
	name := color.New(color.FgCyan, color.Bold)

	header.Printf("Activity for %s (%s)\n\n", username, window)
	for _, repo := range activity {
		fmt.Printf("  %s\n", name.Sprint(repo.FullName))
		fmt.Printf("    Pushed:  %s\n", repo.PushedAt.Format("2006-01-02"))
		fmt.Printf("    Commits: %d\n", len(repo.Commits))
		fmt.Printf("    About:   %s\n", repo.Summary())
		fmt.Println()
	}
	fmt.Printf("Found %d active repositories. Pick spotlight projects and run `spotlight generate`.\n", len(activity))

	return nil
}

// parseWindow turns the --from/--to strings into an inclusive DateRange.
// Empty values default to the first of the current month and today, matching
// the original interactive defaults. The end date covers its whole day.
func parseWindow(from, to string) (models.DateRange, error) {
	now := time.Now().UTC()

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return models.DateRange{}, &models.ValidationError{Reason: fmt.Sprintf("invalid --from date %q (use YYYY-MM-DD)", from)}
		}
		start = parsed
	}

	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return models.DateRange{}, &models.ValidationError{Reason: fmt.Sprintf("invalid --to date %q (use YYYY-MM-DD)", to)}
		}
		end = parsed
	}
	// Inclusive end: cover the entire final day.
	end = end.Add(24*time.Hour - time.Second)

	return models.NewDateRange(start, end)
}
