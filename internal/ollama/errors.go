package ollama

// BackendUnavailableError means the generation backend could not be reached
// at all: the ollama binary is missing or the server is not running.
type BackendUnavailableError struct {
	Message string
}

func (e *BackendUnavailableError) Error() string {
	return "generation backend unavailable: " + e.Message
}

// GenerationError means the backend ran but produced no usable output.
// Detail carries the backend's diagnostic output when there is any.
type GenerationError struct {
	Message string
	Detail  string
}

func (e *GenerationError) Error() string {
	if e.Detail != "" {
		return "generation failed: " + e.Message + ": " + e.Detail
	}
	return "generation failed: " + e.Message
}
