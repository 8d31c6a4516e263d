package github

import (
	"errors"
	"fmt"
	"time"
)

// errNotFound is internal: a missing README is expected and maps to empty
// content, never to a caller-visible error.
var errNotFound = errors.New("not found")

// AuthError indicates the token was rejected (bad or expired credentials).
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("github authentication failed (HTTP %d): %s", e.Status, e.Message)
}

// RateLimitError indicates the API quota is exhausted. Reset is the time the
// quota renews, taken from the X-RateLimit-Reset header when present.
type RateLimitError struct {
	Reset   time.Time
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Reset.IsZero() {
		return "github rate limit exceeded: " + e.Message
	}
	return fmt.Sprintf("github rate limit exceeded, resets at %s: %s",
		e.Reset.Format(time.RFC3339), e.Message)
}

// NetworkError wraps a transport-level failure that survived retries.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "github request failed: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
