package config

import (
	"time"

	"github.com/spf13/viper"
)

// GetToken returns the GitHub access token. Empty is allowed: requests then
// run unauthenticated at the lower anonymous rate limit.
func GetToken() string {
	return viper.GetString("github.token")
}

// GetAPIBaseURL returns the GitHub API base URL.
func GetAPIBaseURL() string {
	return viper.GetString("github.api_url")
}

// GetCacheTTL returns how long fetched API responses may be reused in-process.
func GetCacheTTL() time.Duration {
	return viper.GetDuration("github.cache_ttl")
}

// GetOllamaURL returns the Ollama server endpoint.
func GetOllamaURL() string {
	return viper.GetString("ollama.url")
}

// GetDefaultModel returns the generation model used when --model is not given.
func GetDefaultModel() string {
	return viper.GetString("generation.model")
}

// GetBackend returns the generation backend kind: "api" or "cli".
func GetBackend() string {
	return viper.GetString("generation.backend")
}

// GetPlatform returns the target platform for generated posts.
func GetPlatform() string {
	return viper.GetString("prompt.platform")
}

// GetMaxCommits returns how many commit messages a spotlight paragraph may
// quote.
func GetMaxCommits() int {
	return viper.GetInt("prompt.max_commits")
}

// GetSamplePosts returns tone-reference posts configured in the config file.
func GetSamplePosts() []string {
	return viper.GetStringSlice("prompt.sample_posts")
}
