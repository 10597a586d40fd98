package choicestring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedEntry is returned when a probability:action pair cannot be
// parsed.
var ErrMalformedEntry = errors.New("choicestring: malformed probability:action entry")

// Parse parses a choice string into the action indices it mentions, in
// order of appearance. Probabilities are validated as numbers but otherwise
// ignored: which actions a scheduler may take is all the fusion layer
// needs, not how it randomizes among them.
//
// Braces and brackets are stripped before splitting, so "{0.5:2, 0.5:3}",
// "[1:0]" and a bare "1:4" all parse. An empty (or brackets-only) string
// parses to an empty, non-nil slice.
func Parse(s string) ([]int, error) {
	cleaned := strings.NewReplacer("{", "", "}", "", "[", "", "]", "").Replace(s)
	cleaned = strings.Trim(cleaned, ", \t")
	actions := make([]int, 0, 2)
	if cleaned == "" {
		return actions, nil
	}

	for _, entry := range strings.Split(cleaned, ",") {
		action, err := parseEntry(entry)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}

	return actions, nil
}

func parseEntry(entry string) (int, error) {
	parts := strings.SplitN(entry, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("choicestring: entry %q: %w", strings.TrimSpace(entry), ErrMalformedEntry)
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, fmt.Errorf("choicestring: entry %q: %w", strings.TrimSpace(entry), ErrMalformedEntry)
	}
	action, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("choicestring: entry %q: %w", strings.TrimSpace(entry), ErrMalformedEntry)
	}

	return action, nil
}
