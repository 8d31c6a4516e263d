package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// StubRepo describes one repository served by the fake GitHub API.
type StubRepo struct {
	Owner       string
	Name        string
	Description string
	Language    string
	PushedAt    time.Time
	Readme      string // empty means the readme endpoint answers 404
	Commits     []StubCommit
}

// StubCommit is one commit served for a stub repository.
type StubCommit struct {
	SHA        string
	Message    string
	AuthoredAt time.Time
}

// FullName returns owner/name.
func (r StubRepo) FullName() string {
	return r.Owner + "/" + r.Name
}

// GitHubStub is a fake GitHub REST API backed by httptest.
type GitHubStub struct {
	Server *httptest.Server
	T      *testing.T

	Username string
	Repos    []StubRepo
}

// NewGitHubStub starts a fake GitHub API serving the given repositories for
// username. The server is shut down when the test finishes.
func NewGitHubStub(t *testing.T, username string, repos []StubRepo) *GitHubStub {
	t.Helper()

	stub := &GitHubStub{T: t, Username: username, Repos: repos}
	stub.Server = httptest.NewServer(http.HandlerFunc(stub.handle))
	t.Cleanup(stub.Server.Close)
	return stub
}

// URL returns the stub's base URL, suitable as the client's API base URL.
func (s *GitHubStub) URL() string {
	return s.Server.URL
}

func (s *GitHubStub) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/users/"+s.Username+"/repos":
		s.serveRepoList(w)
	default:
		for _, repo := range s.Repos {
			switch r.URL.Path {
			case "/repos/" + repo.FullName() + "/commits":
				s.serveCommits(w, repo)
				return
			case "/repos/" + repo.FullName() + "/readme":
				s.serveReadme(w, repo)
				return
			}
		}
		http.NotFound(w, r)
	}
}

func (s *GitHubStub) serveRepoList(w http.ResponseWriter) {
	var list []map[string]any
	for _, repo := range s.Repos {
		list = append(list, map[string]any{
			"name":        repo.Name,
			"full_name":   repo.FullName(),
			"description": repo.Description,
			"language":    repo.Language,
			"html_url":    fmt.Sprintf("https://github.com/%s", repo.FullName()),
			"pushed_at":   repo.PushedAt.UTC().Format(time.RFC3339),
		})
	}
	s.writeJSON(w, list)
}

func (s *GitHubStub) serveCommits(w http.ResponseWriter, repo StubRepo) {
	commits := []map[string]any{}
	for _, c := range repo.Commits {
		commits = append(commits, map[string]any{
			"sha": c.SHA,
			"commit": map[string]any{
				"message": c.Message,
				"author": map[string]any{
					"date": c.AuthoredAt.UTC().Format(time.RFC3339),
				},
			},
		})
	}
	s.writeJSON(w, commits)
}

func (s *GitHubStub) serveReadme(w http.ResponseWriter, repo StubRepo) {
	if repo.Readme == "" {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, repo.Readme)
}

func (s *GitHubStub) writeJSON(w http.ResponseWriter, v any) {
	s.T.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.T.Fatalf("failed to encode stub response: %v", err)
	}
}
