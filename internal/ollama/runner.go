package ollama

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultBinary is the executable Runner invokes when no path is given.
const DefaultBinary = "ollama"

// Runner invokes the local ollama executable directly instead of going
// through the HTTP API. The prompt is written to the process's stdin and the
// generated text is read verbatim from its stdout.
type Runner struct {
	path string
}

// NewRunner creates a Runner for the given executable path or name.
func NewRunner(path string) *Runner {
	if path == "" {
		path = DefaultBinary
	}
	return &Runner{path: path}
}

// Generate runs `ollama run <model>` with the prompt on stdin and returns
// its standard output. The call blocks until the process exits; cancel via
// ctx.
func (r *Runner) Generate(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = DefaultModel
	}

	cmd := exec.CommandContext(ctx, r.path, "run", model)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if binaryMissing(err) {
			return "", &BackendUnavailableError{
				Message: fmt.Sprintf("%s not found - install it from https://ollama.com", r.path),
			}
		}
		return "", &GenerationError{
			Message: fmt.Sprintf("%s run %s exited with an error", r.path, model),
			Detail:  strings.TrimSpace(stderr.String()),
		}
	}

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", &GenerationError{
			Message: fmt.Sprintf("model %s returned empty output", model),
			Detail:  strings.TrimSpace(stderr.String()),
		}
	}
	return text, nil
}

// Models runs `ollama list` and parses the model names from its tabular
// output (the first column, header line skipped).
func (r *Runner) Models(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, r.path, "list")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if binaryMissing(err) {
			return nil, &BackendUnavailableError{
				Message: fmt.Sprintf("%s not found - install it from https://ollama.com", r.path),
			}
		}
		return nil, &BackendUnavailableError{
			Message: fmt.Sprintf("%s list failed: %s", r.path, strings.TrimSpace(stderr.String())),
		}
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	var names []string
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return names, nil
}

// binaryMissing covers both a bare name that LookPath could not resolve and
// an explicit path that does not exist.
func binaryMissing(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}
