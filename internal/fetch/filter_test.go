// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"testing"
	"time"

	"github.com/pdiddy/paper-review/pkg/types"
)

func TestMatchTags(t *testing.T) {
	tags := []string{"cs.AI", "cs.LG", "stat.ML"}

	tests := []struct {
		name      string
		criterion []string
		mode      types.FilterMode
		want      bool
	}{
		{"empty criterion passes AND", nil, types.FilterAND, true},
		{"empty criterion passes OR", nil, types.FilterOR, true},
		{"AND all present", []string{"cs.AI", "cs.LG"}, types.FilterAND, true},
		{"AND one missing", []string{"cs.AI", "cs.CV"}, types.FilterAND, false},
		{"OR one present", []string{"cs.CV", "stat.ML"}, types.FilterOR, true},
		{"OR none present", []string{"cs.CV", "cs.RO"}, types.FilterOR, false},
		{"single value AND", []string{"cs.AI"}, types.FilterAND, true},
		{"single value OR miss", []string{"cs.CV"}, types.FilterOR, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchTags(tags, tt.criterion, tt.mode); got != tt.want {
				t.Errorf("matchTags(%v, %v) = %v, want %v", tt.criterion, tt.mode, got, tt.want)
			}
		})
	}
}

func TestMatchTagsEmptyPaperTags(t *testing.T) {
	if matchTags(nil, []string{"cs.AI"}, types.FilterOR) {
		t.Error("paper with no tags should not match a non-empty OR criterion")
	}
	if matchTags(nil, []string{"cs.AI"}, types.FilterAND) {
		t.Error("paper with no tags should not match a non-empty AND criterion")
	}
}

func TestInWindow(t *testing.T) {
	from := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"inside", time.Date(2026, 2, 12, 12, 0, 0, 0, time.UTC), true},
		{"at start", from, true},
		{"at end", to, true},
		{"before", from.Add(-time.Second), false},
		{"after", to.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inWindow(tt.t, from, to); got != tt.want {
				t.Errorf("inWindow(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}
