package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/pders01/spotlight/internal/models"
)

func testWindow(t *testing.T) models.DateRange {
	t.Helper()
	window, err := models.NewDateRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return window
}

func testInput(t *testing.T) Input {
	t.Helper()
	return Input{
		Username: "alice",
		Window:   testWindow(t),
		Spotlight: []models.Repository{
			{
				Name:     "tool",
				FullName: "alice/tool",
				URL:      "https://github.com/alice/tool",
				Readme:   "A CLI tool.\nSome more detail.",
				PushedAt: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
				Commits: []models.Commit{
					{SHA: "aaa", Message: "fix bug"},
					{SHA: "bbb", Message: "add feature"},
				},
			},
		},
		Other: []models.Repository{
			{Name: "webapp", FullName: "alice/webapp"},
			{Name: "dotfiles", FullName: "alice/dotfiles"},
		},
		SamplePosts: []string{"Excited to ship..."},
	}
}

func TestBuildDeterministic(t *testing.T) {
	in := testInput(t)
	first := Build(in)
	for i := 0; i < 5; i++ {
		if Build(in) != first {
			t.Fatal("Build is not deterministic for identical input")
		}
	}
}

func TestBuildSectionOrder(t *testing.T) {
	out := Build(testInput(t))

	spotlightIdx := strings.Index(out, "SPOTLIGHT PROJECTS:")
	otherIdx := strings.Index(out, "OTHER PROJECTS:")
	requirementsIdx := strings.Index(out, "REQUIREMENTS:")

	if spotlightIdx < 0 || otherIdx < 0 || requirementsIdx < 0 {
		t.Fatalf("missing sections in prompt:\n%s", out)
	}
	if !(spotlightIdx < otherIdx && otherIdx < requirementsIdx) {
		t.Errorf("sections out of order: spotlight=%d other=%d requirements=%d",
			spotlightIdx, otherIdx, requirementsIdx)
	}

	sampleIdx := strings.Index(out, "Excited to ship...")
	if sampleIdx < 0 || sampleIdx > spotlightIdx {
		t.Error("sample posts must appear before the spotlight section")
	}
}

func TestBuildOmitsEmptyOtherSection(t *testing.T) {
	in := testInput(t)
	in.Other = nil

	out := Build(in)
	if strings.Contains(out, "OTHER PROJECTS:") {
		t.Error("prompt contains other-projects header despite empty other set")
	}
}

func TestBuildOmitsEmptySpotlightSection(t *testing.T) {
	in := testInput(t)
	in.Spotlight = nil
	in.Other = append(in.Other, models.Repository{Name: "tool"})

	out := Build(in)
	if strings.Contains(out, "SPOTLIGHT PROJECTS:") {
		t.Error("prompt contains spotlight header despite empty spotlight set")
	}
	if !strings.Contains(out, "webapp, dotfiles, tool") {
		t.Errorf("all repos should be listed in the other section:\n%s", out)
	}
}

func TestBuildOmitsToneSectionWithoutSamples(t *testing.T) {
	in := testInput(t)
	in.SamplePosts = nil

	out := Build(in)
	if strings.Contains(out, "TONE REFERENCE") {
		t.Error("prompt contains tone section despite empty sample list")
	}
}

func TestBuildEmptyReadmeGetsPlaceholder(t *testing.T) {
	in := testInput(t)
	in.Spotlight[0].Readme = ""
	in.Spotlight[0].Description = ""

	out := Build(in)
	if !strings.Contains(out, "**tool** - "+models.FallbackSummary) {
		t.Errorf("expected fallback summary for tool:\n%s", out)
	}
}

func TestBuildCapsCommitMessages(t *testing.T) {
	in := testInput(t)
	var commits []models.Commit
	for i := 0; i < 8; i++ {
		commits = append(commits, models.Commit{Message: string(rune('a'+i)) + "-commit"})
	}
	in.Spotlight[0].Commits = commits

	out := Build(in)
	if !strings.Contains(out, "e-commit") {
		t.Error("fifth commit message missing")
	}
	if strings.Contains(out, "f-commit") {
		t.Error("more than the default cap of commit messages rendered")
	}

	in.MaxCommits = 2
	out = Build(in)
	if !strings.Contains(out, "b-commit") || strings.Contains(out, "c-commit") {
		t.Error("configured cap not honored")
	}
}

// The end-to-end scenario: one spotlight repo, no others, one sample post.
func TestBuildEndToEndScenario(t *testing.T) {
	in := Input{
		Username: "alice",
		Window:   testWindow(t),
		Spotlight: []models.Repository{
			{
				Name:     "tool",
				FullName: "alice/tool",
				URL:      "https://github.com/alice/tool",
				Readme:   "A CLI tool.\nLonger description here.",
				PushedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				Commits: []models.Commit{
					{Message: "fix bug"},
					{Message: "add feature"},
				},
			},
		},
		SamplePosts: []string{"Excited to ship..."},
	}

	out := Build(in)

	ordered := []string{
		"Excited to ship...",
		"**tool** - A CLI tool.",
		"fix bug",
		"add feature",
		"https://github.com/alice/tool",
		"REQUIREMENTS:",
	}
	last := -1
	for _, want := range ordered {
		idx := strings.Index(out, want)
		if idx < 0 {
			t.Fatalf("prompt missing %q:\n%s", want, out)
		}
		if idx < last {
			t.Errorf("%q appears out of order", want)
		}
		last = idx
	}

	if strings.Contains(out, "OTHER PROJECTS:") {
		t.Error("no other-projects section expected")
	}
}

func TestBuildUsesPlatform(t *testing.T) {
	in := testInput(t)
	in.Platform = "Mastodon"

	out := Build(in)
	if !strings.Contains(out, "Mastodon post") {
		t.Error("platform hint not reflected in prompt")
	}
	if strings.Contains(out, "LinkedIn") {
		t.Error("default platform leaked into prompt")
	}
}
