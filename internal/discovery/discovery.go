// Package discovery expands glob patterns from config into concrete
// input file lists.
package discovery

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Expand resolves glob patterns (including ** globs) to file paths.
// Results are deduplicated and sorted so input order is stable across
// runs. A pattern matching nothing is not an error; an invalid pattern
// is.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	out := make([]string, 0)

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid input pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			out = append(out, match)
		}
	}

	sort.Strings(out)
	return out, nil
}
