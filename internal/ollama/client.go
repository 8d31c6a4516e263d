package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "llama3"
	// DefaultURL is the default Ollama API endpoint.
	DefaultURL = "http://localhost:11434"
)

// Generator is the narrow contract the pipeline depends on: prompt in, text
// out, typed failure. Client talks to the Ollama HTTP API, Runner shells out
// to the ollama executable; alternate backends only need to satisfy this.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
	Models(ctx context.Context) ([]string, error)
}

// Client wraps the Ollama API client.
type Client struct {
	client *api.Client
}

// NewClient creates a client for the Ollama server at rawURL. An empty URL
// falls back to the OLLAMA_HOST environment or the default endpoint.
func NewClient(rawURL string) (*Client, error) {
	if rawURL == "" {
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return &Client{client: client}, nil
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL %q: %w", rawURL, err)
	}
	return &Client{client: api.NewClient(base, http.DefaultClient)}, nil
}

// IsAvailable checks if Ollama is running and accessible.
func IsAvailable(rawURL string) bool {
	if rawURL == "" {
		rawURL = DefaultURL
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(rawURL)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Generate sends the prompt to the model and returns the complete response
// text. The call blocks until the backend finishes; cancel via ctx.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = DefaultModel
	}

	stream := false
	var b strings.Builder
	err := c.client.Generate(ctx, &api.GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: &stream,
	}, func(resp api.GenerateResponse) error {
		b.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		if isConnectionError(err) {
			return "", &BackendUnavailableError{Message: err.Error()}
		}
		return "", &GenerationError{Message: "ollama generate call failed", Detail: err.Error()}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", &GenerationError{Message: fmt.Sprintf("model %s returned empty output", model)}
	}
	return text, nil
}

// Models lists the model names available on the server.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	listResp, err := c.client.List(ctx)
	if err != nil {
		if isConnectionError(err) {
			return nil, &BackendUnavailableError{Message: err.Error()}
		}
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	names := make([]string, 0, len(listResp.Models))
	for _, model := range listResp.Models {
		names = append(names, model.Name)
	}
	return names, nil
}

// isConnectionError distinguishes "server not there" from "server answered
// with an error".
func isConnectionError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "could not connect")
}
