package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/maypok86/otter/v2"
)

const (
	// DefaultBaseURL is the public GitHub REST API endpoint.
	DefaultBaseURL = "https://api.github.com"

	// DefaultCacheTTL bounds how long a fetched response may be reused
	// within a single run. The cache is memory-only and dies with the
	// process.
	DefaultCacheTTL = 10 * time.Minute

	cacheCapacity = 1_000
)

// Client is a GitHub REST API client with bounded retries and an in-memory
// response cache. A zero token is allowed: requests go out unauthenticated
// at the lower anonymous rate limit.
type Client struct {
	httpClient *http.Client
	cache      *otter.Cache[string, []byte]
	logger     *slog.Logger
	baseURL    string
	token      string
}

// NewClient creates a client for the given API base URL. An empty baseURL
// selects the public GitHub API, a non-positive cacheTTL selects the default
// TTL, and a nil logger discards all log output.
func NewClient(baseURL, token string, cacheTTL time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cache := otter.Must(&otter.Options[string, []byte]{
		MaximumSize:      cacheCapacity,
		ExpiryCalculator: otter.ExpiryWriting[string, []byte](cacheTTL),
	})

	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		cache:      cache,
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// get performs a GET against the API with retry on transient failures.
// Auth failures, rate limits, and 404s are unrecoverable and surface
// immediately as their typed errors.
func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	cacheKey := accept + " " + url
	if body, ok := c.cache.GetIfPresent(cacheKey); ok {
		c.logger.Debug("cache hit", "url", url)
		return body, nil
	}

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
			}
			req.Header.Set("Accept", accept)
			req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
			if c.token != "" {
				req.Header.Set("Authorization", "Bearer "+c.token)
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				c.logger.Warn("github request failed", "url", url, "error", err)
				return err
			}
			defer func() {
				if err := resp.Body.Close(); err != nil {
					c.logger.Debug("failed to close response body", "error", err)
				}
			}()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading response: %w", err)
			}

			if typed := classifyStatus(resp, data); typed != nil {
				if retryable(resp.StatusCode) {
					c.logger.Warn("github server error", "url", url, "status", resp.StatusCode)
					return typed
				}
				return retry.Unrecoverable(typed)
			}

			body = data
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("retrying github request", "url", url, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, wrapTransport(err)
	}

	c.cache.Set(cacheKey, body)
	return body, nil
}

// classifyStatus maps non-2xx responses onto the error taxonomy.
func classifyStatus(resp *http.Response, body []byte) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return &AuthError{Status: resp.StatusCode, Message: trimBody(body)}
	case resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusConflict: // 409: empty repository
		return errNotFound
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && rateLimited(resp, body):
		return &RateLimitError{Reset: parseReset(resp), Message: trimBody(body)}
	case resp.StatusCode == http.StatusForbidden:
		// 403 without rate-limit markers still means the credentials
		// don't grant access.
		return &AuthError{Status: resp.StatusCode, Message: trimBody(body)}
	default:
		return fmt.Errorf("github API returned status %d: %s", resp.StatusCode, trimBody(body))
	}
}

// rateLimited reports whether a 403 carries rate-limit exhaustion markers.
func rateLimited(resp *http.Response, body []byte) bool {
	if resp.Header.Get("X-RateLimit-Remaining") == "0" {
		return true
	}
	return strings.Contains(strings.ToLower(string(body)), "rate limit")
}

// parseReset reads the quota reset time from X-RateLimit-Reset (unix epoch
// seconds). Zero time when the header is absent or malformed.
func parseReset(resp *http.Response) time.Time {
	raw := resp.Header.Get("X-RateLimit-Reset")
	if raw == "" {
		return time.Time{}
	}
	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(epoch, 0).UTC()
}

func retryable(status int) bool {
	return status >= http.StatusInternalServerError
}

// wrapTransport keeps typed errors intact and wraps everything else as a
// NetworkError.
func wrapTransport(err error) error {
	var authErr *AuthError
	var rateErr *RateLimitError
	switch {
	case errors.As(err, &authErr):
		return authErr
	case errors.As(err, &rateErr):
		return rateErr
	case errors.Is(err, errNotFound):
		return errNotFound
	}
	return &NetworkError{Err: err}
}

func trimBody(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}
