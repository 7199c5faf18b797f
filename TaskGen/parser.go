package TaskGen

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// Matches the first bracketed array of objects inside free-form model output.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[\s*\{.*?\}\s*\]`)

// ParseCandidates turns raw model output into exactly TaskCount unique
// candidates. Titles are deduplicated by exact post-trim match; this is
// case-sensitive on purpose ("Red door" and "red door" are distinct).
// If no JSON array can be recovered at all, the first TaskCount fallback
// entries are returned as-is.
func ParseCandidates(text string) []TaskCandidate {
	raw, err := extractArray(text)
	if err != nil {
		out := make([]TaskCandidate, TaskCount)
		copy(out, FallbackPool[:TaskCount])
		return out
	}

	seen := make(map[string]bool, TaskCount)
	out := make([]TaskCandidate, 0, TaskCount)

	for _, c := range raw {
		if len(out) == TaskCount {
			break
		}
		title := strings.TrimSpace(c.Title)
		if title == "" || seen[title] {
			continue
		}
		count := c.TotalCount
		if count <= 0 {
			count = 1
		}
		out = append(out, TaskCandidate{Title: title, TotalCount: count})
		seen[title] = true
	}

	// Backfill from the pool, skipping titles already in the set
	for _, fb := range FallbackPool {
		if len(out) == TaskCount {
			break
		}
		if seen[fb.Title] {
			continue
		}
		out = append(out, fb)
		seen[fb.Title] = true
	}

	return out
}

// extractArray tries a direct parse of the trimmed text first, then falls
// back to recovering a JSON array substring from surrounding prose (models
// like to wrap their output in markdown fences or commentary).
func extractArray(text string) ([]TaskCandidate, error) {
	trimmed := strings.TrimSpace(text)

	var raw []TaskCandidate
	if err := json.Unmarshal([]byte(trimmed), &raw); err == nil {
		return raw, nil
	}

	match := jsonArrayPattern.FindString(trimmed)
	if match == "" {
		return nil, errors.New("no JSON array found in response")
	}
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
