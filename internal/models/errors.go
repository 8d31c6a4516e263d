package models

// ValidationError indicates caller-supplied input (date range, username,
// spotlight partition) that cannot be acted on.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}
