package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/pders01/spotlight/internal/models"
)

const (
	reposPerPage   = 100
	commitsPerPage = 50

	acceptJSON      = "application/vnd.github+json"
	acceptRawReadme = "application/vnd.github.raw+json"
)

// GitHub username rules: alphanumeric and hyphens, no leading/trailing or
// doubled hyphens, max 39 characters.
var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9]|-[a-zA-Z0-9]){0,38}$`)

type repoResponse struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Language    string    `json:"language"`
	PushedAt    time.Time `json:"pushed_at"`
}

type commitResponse struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// FetchActivity lists the user's repositories, keeps those last pushed inside
// the inclusive window, and loads each kept repository's in-window commits
// and README. Repositories with no commits inside the window are dropped.
// A missing README is not an error; the repository is returned with empty
// README content.
func (c *Client) FetchActivity(ctx context.Context, username string, window models.DateRange) ([]models.Repository, error) {
	if !usernameRe.MatchString(username) {
		return nil, &models.ValidationError{Reason: fmt.Sprintf("invalid GitHub username %q", username)}
	}

	repos, err := c.listRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	var activity []models.Repository
	for _, repo := range repos {
		if !window.Contains(repo.PushedAt) {
			continue
		}

		commits, err := c.listCommits(ctx, repo.FullName, window)
		if err != nil {
			// Rate-limit exhaustion mid-fetch must not produce a
			// silently truncated result.
			var rateErr *RateLimitError
			if errors.As(err, &rateErr) {
				return nil, err
			}
			c.logger.Warn("skipping repository, commit fetch failed",
				"repo", repo.FullName, "error", err)
			continue
		}
		if len(commits) == 0 {
			c.logger.Debug("no commits in window", "repo", repo.FullName)
			continue
		}

		readme, err := c.fetchReadme(ctx, repo.FullName)
		if err != nil {
			c.logger.Warn("readme fetch failed, continuing without it",
				"repo", repo.FullName, "error", err)
			readme = ""
		}

		activity = append(activity, models.Repository{
			Name:        repo.Name,
			FullName:    repo.FullName,
			Description: repo.Description,
			URL:         repo.HTMLURL,
			Language:    repo.Language,
			PushedAt:    repo.PushedAt,
			Readme:      readme,
			Commits:     commits,
		})
	}

	c.logger.Info("fetched activity",
		"username", username,
		"repos_total", len(repos),
		"repos_in_window", len(activity))

	return activity, nil
}

// listRepositories pages through the user's repositories, newest push first.
func (c *Client) listRepositories(ctx context.Context, username string) ([]repoResponse, error) {
	var all []repoResponse
	for page := 1; ; page++ {
		apiURL := fmt.Sprintf("%s/users/%s/repos?sort=pushed&per_page=%d&page=%d",
			c.baseURL, url.PathEscape(username), reposPerPage, page)

		body, err := c.get(ctx, apiURL, acceptJSON)
		if err != nil {
			if errors.Is(err, errNotFound) {
				return nil, &models.ValidationError{Reason: fmt.Sprintf("GitHub user %q not found", username)}
			}
			return nil, fmt.Errorf("listing repositories: %w", err)
		}

		var batch []repoResponse
		if err := json.Unmarshal(body, &batch); err != nil {
			return nil, fmt.Errorf("decoding repository list: %w", err)
		}

		all = append(all, batch...)
		if len(batch) < reposPerPage {
			return all, nil
		}
	}
}

// listCommits fetches commits restricted to the window, newest first. Only
// the first page is fetched: the prompt quotes a handful of messages at
// most, so deeper history is intentionally left unpaged.
func (c *Client) listCommits(ctx context.Context, fullName string, window models.DateRange) ([]models.Commit, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/commits?since=%s&until=%s&per_page=%d",
		c.baseURL, fullName,
		url.QueryEscape(window.Start.UTC().Format(time.RFC3339)),
		url.QueryEscape(window.End.UTC().Format(time.RFC3339)),
		commitsPerPage)

	body, err := c.get(ctx, apiURL, acceptJSON)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing commits for %s: %w", fullName, err)
	}

	var raw []commitResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding commits for %s: %w", fullName, err)
	}

	commits := make([]models.Commit, 0, len(raw))
	for _, item := range raw {
		commits = append(commits, models.Commit{
			SHA:        item.SHA,
			Message:    item.Commit.Message,
			AuthoredAt: item.Commit.Author.Date,
		})
	}
	return commits, nil
}

// fetchReadme returns the raw README text, or empty when the repository has
// none.
func (c *Client) fetchReadme(ctx context.Context, fullName string) (string, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/readme", c.baseURL, fullName)

	body, err := c.get(ctx, apiURL, acceptRawReadme)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(body), nil
}
