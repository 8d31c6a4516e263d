package prompt

import "strings"

// preambleMarkers start the "Here is your post" style lead-in line backends
// like to emit before the actual post.
var preambleMarkers = []string{"Here is", "Here's"}

// Clean strips common backend artifacts from a generated post: code fences,
// horizontal rules, runs of blank lines, and a lead-in preamble. Only the
// first non-empty line is a preamble candidate, so a post that mentions
// "Here's..." further down keeps that text.
func Clean(raw string) string {
	var kept []string
	preambleDone := false
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "---" || strings.HasPrefix(trimmed, "```") {
			continue
		}
		if !preambleDone && trimmed != "" {
			preambleDone = true
			if isPreamble(trimmed) {
				continue
			}
		}
		kept = append(kept, trimmed)
	}

	cleaned := strings.Join(kept, "\n")
	for strings.Contains(cleaned, "\n\n\n") {
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(cleaned)
}

func isPreamble(line string) bool {
	for _, marker := range preambleMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
