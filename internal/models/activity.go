package models

import (
	"fmt"
	"strings"
	"time"
)

// FallbackSummary is used when a repository has neither a README nor a
// description to derive a one-line summary from.
const FallbackSummary = "No description available."

// Commit is a single commit message within the activity window.
type Commit struct {
	SHA        string    `json:"sha"`
	Message    string    `json:"message"`
	AuthoredAt time.Time `json:"authored_at"`
}

// Repository is one fetched repository with its in-window commits.
// Spotlight is set after fetching, when the user partitions the results.
type Repository struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	Language    string    `json:"language,omitempty"`
	PushedAt    time.Time `json:"pushed_at"`
	Readme      string    `json:"readme,omitempty"`
	Commits     []Commit  `json:"commits,omitempty"`
	Spotlight   bool      `json:"spotlight"`
}

// Summary returns a one-line description for the repository: the first
// non-empty README line, then the GitHub description, then a fixed
// placeholder. It never returns an empty string.
func (r Repository) Summary() string {
	for _, line := range strings.Split(r.Readme, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if line != "" {
			return line
		}
	}
	if desc := strings.TrimSpace(r.Description); desc != "" {
		return desc
	}
	return FallbackSummary
}

// ShortMessage returns the first line of the commit message.
func (c Commit) ShortMessage() string {
	msg := strings.TrimSpace(c.Message)
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

// DateRange is the inclusive activity window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange validates that start does not come after end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, &ValidationError{
			Reason: fmt.Sprintf("start date %s is after end date %s",
				start.Format("2006-01-02"), end.Format("2006-01-02")),
		}
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether t falls within the window, inclusive on both ends.
func (d DateRange) Contains(t time.Time) bool {
	return !t.Before(d.Start) && !t.After(d.End)
}

// String renders the window the way it appears in prompts, e.g.
// "January 01 to January 31, 2024".
func (d DateRange) String() string {
	return fmt.Sprintf("%s to %s", d.Start.Format("January 02"), d.End.Format("January 02, 2006"))
}

// Partition splits fetched repositories into spotlight and other sets,
// preserving fetch order. Every name in spotlightNames must match a fetched
// repository (by Name or FullName); an unknown name is a ValidationError
// rather than a silent miss.
func Partition(repos []Repository, spotlightNames []string) (spotlight, other []Repository, err error) {
	wanted := make(map[string]bool, len(spotlightNames))
	for _, name := range spotlightNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		wanted[strings.ToLower(name)] = false
	}

	for _, repo := range repos {
		short := strings.ToLower(repo.Name)
		full := strings.ToLower(repo.FullName)

		matched := false
		for _, key := range []string{short, full} {
			if _, ok := wanted[key]; ok {
				wanted[key] = true
				matched = true
			}
		}

		if matched {
			repo.Spotlight = true
			spotlight = append(spotlight, repo)
		} else {
			other = append(other, repo)
		}
	}

	for name, found := range wanted {
		if !found {
			return nil, nil, &ValidationError{
				Reason: fmt.Sprintf("spotlight project %q was not found in the fetched activity", name),
			}
		}
	}

	return spotlight, other, nil
}
