package prompt

import (
	"fmt"
	"strings"

	"github.com/pders01/spotlight/internal/models"
)

const (
	// DefaultPlatform is the post target when none is configured.
	DefaultPlatform = "LinkedIn"

	// DefaultMaxCommits caps how many commit messages a spotlight
	// paragraph quotes when no cap is configured.
	DefaultMaxCommits = 5
)

// Input is everything the builder needs. Build is a pure function of this
// struct: identical input produces byte-identical prompt text.
type Input struct {
	Username    string
	Window      models.DateRange
	Spotlight   []models.Repository
	Other       []models.Repository
	SamplePosts []string
	Platform    string
	MaxCommits  int
}

// Build assembles the generation prompt in a fixed section order: tone
// reference, spotlight project paragraphs, condensed other-project list,
// closing requirements. The spotlight section always precedes the
// other-projects section; empty sections are omitted entirely.
func Build(in Input) string {
	platform := in.Platform
	if platform == "" {
		platform = DefaultPlatform
	}
	maxCommits := in.MaxCommits
	if maxCommits <= 0 {
		maxCommits = DefaultMaxCommits
	}

	var b strings.Builder

	fmt.Fprintf(&b, "You are a professional %s content creator. Generate a human-sounding, engaging %s post about recent GitHub activity.\n\n",
		platform, platform)

	b.WriteString("CONTEXT:\n")
	fmt.Fprintf(&b, "- Author: %s\n", in.Username)
	fmt.Fprintf(&b, "- Date range: %s\n", in.Window)
	fmt.Fprintf(&b, "- Spotlight projects: %d main projects to highlight\n", len(in.Spotlight))
	fmt.Fprintf(&b, "- Supporting projects: %d additional projects to mention briefly\n", len(in.Other))

	if len(in.SamplePosts) > 0 {
		b.WriteString("\nTONE REFERENCE (match the voice of these example posts):\n")
		for i, sample := range in.SamplePosts {
			fmt.Fprintf(&b, "\nExample %d:\n\"\"\"\n%s\n\"\"\"\n", i+1, strings.TrimSpace(sample))
		}
	}

	if len(in.Spotlight) > 0 {
		b.WriteString("\nSPOTLIGHT PROJECTS:\n")
		for _, repo := range in.Spotlight {
			b.WriteString(formatSpotlight(repo, maxCommits))
		}
	}

	if len(in.Other) > 0 {
		b.WriteString("\nOTHER PROJECTS:\n")
		names := make([]string, 0, len(in.Other))
		for _, repo := range in.Other {
			names = append(names, repo.Name)
		}
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n")
	}

	b.WriteString("\nREQUIREMENTS:\n")
	b.WriteString("1. Write in first person with a humble, professional, authentic tone\n")
	b.WriteString("2. Give each spotlight project its own short paragraph or bullet\n")
	b.WriteString("3. Mention other projects briefly, in one or two lines total\n")
	b.WriteString("4. Include the GitHub links as plain text, not markdown\n")
	b.WriteString("5. Add 3-5 relevant hashtags at the end\n")
	b.WriteString("6. Avoid robotic or corporate phrasing\n")
	fmt.Fprintf(&b, "7. Keep the total length suitable for a %s post\n", platform)
	fmt.Fprintf(&b, "\nGenerate the %s post now:", platform)

	return b.String()
}

// formatSpotlight renders one spotlight repository paragraph: name, one-line
// summary, newest commit messages (capped), and the project link.
func formatSpotlight(repo models.Repository, maxCommits int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n**%s** - %s\n", repo.Name, repo.Summary())
	if repo.Language != "" {
		fmt.Fprintf(&b, "Built with %s.\n", repo.Language)
	}

	if len(repo.Commits) > 0 {
		b.WriteString("Recent commits:\n")
		limit := len(repo.Commits)
		if limit > maxCommits {
			limit = maxCommits
		}
		for _, c := range repo.Commits[:limit] {
			fmt.Fprintf(&b, "- %s\n", c.ShortMessage())
		}
	}

	if repo.URL != "" {
		fmt.Fprintf(&b, "Link: %s\n", repo.URL)
	}

	return b.String()
}
