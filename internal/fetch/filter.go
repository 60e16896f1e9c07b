// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"time"

	"github.com/pdiddy/paper-review/pkg/types"
)

// matchTags evaluates the AND/OR set predicate shared by the category
// and keyword filters. An empty criterion list is a no-op: every paper
// passes. AND requires all criterion values to be present in the
// paper's tags; OR requires at least one.
func matchTags(paperTags, criterion []string, mode types.FilterMode) bool {
	if len(criterion) == 0 {
		return true
	}

	have := make(map[string]bool, len(paperTags))
	for _, t := range paperTags {
		have[t] = true
	}

	if mode == types.FilterAND {
		for _, c := range criterion {
			if !have[c] {
				return false
			}
		}
		return true
	}

	for _, c := range criterion {
		if have[c] {
			return true
		}
	}
	return false
}

// inWindow reports whether t lies within [from, to] inclusive.
func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
