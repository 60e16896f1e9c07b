// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *FilterCriteria)
		errMsg string
	}{
		{"defaults are valid", func(c *FilterCriteria) {}, ""},
		{
			"no sources",
			func(c *FilterCriteria) { c.Sources = nil },
			"at least one source",
		},
		{
			"unknown source",
			func(c *FilterCriteria) { c.Sources = []Source{"reddit"} },
			`unknown source "reddit"`,
		},
		{
			"days back zero",
			func(c *FilterCriteria) { c.DaysBack = 0 },
			"days_back must be >= 1",
		},
		{
			"inverted explicit window",
			func(c *FilterCriteria) {
				c.DateFrom = date("2026-02-10")
				c.DateTo = date("2026-02-01")
			},
			"precedes",
		},
		{
			"bad category mode",
			func(c *FilterCriteria) { c.CategoryMode = "XOR" },
			"invalid category mode",
		},
		{
			"bad keyword mode",
			func(c *FilterCriteria) { c.KeywordMode = "NOT" },
			"invalid keyword mode",
		},
		{
			"negative upvote floor",
			func(c *FilterCriteria) { c.MinUpvotes = -1 },
			"min_upvotes",
		},
		{
			"max listed zero",
			func(c *FilterCriteria) { c.MaxListed = 0 },
			"max_listed",
		},
		{
			"top n zero",
			func(c *FilterCriteria) { c.TopN = 0 },
			"top_n",
		},
		{
			"min score out of range",
			func(c *FilterCriteria) { c.MinScore = 11 },
			"min_score",
		},
		{
			"min score zero disables floor",
			func(c *FilterCriteria) { c.MinScore = 0 },
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultCriteria()
			tt.mutate(&c)
			err := c.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestValidateDefaultsModes(t *testing.T) {
	c := DefaultCriteria()
	c.CategoryMode = ""
	c.KeywordMode = ""
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if c.CategoryMode != FilterOR || c.KeywordMode != FilterOR {
		t.Errorf("modes = %q/%q, want OR/OR", c.CategoryMode, c.KeywordMode)
	}
}

func TestDateWindow(t *testing.T) {
	now := date("2026-02-15")

	tests := []struct {
		name     string
		criteria FilterCriteria
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			"relative window",
			FilterCriteria{DaysBack: 3},
			date("2026-02-12"), now,
		},
		{
			"explicit both bounds",
			FilterCriteria{DateFrom: date("2026-01-01"), DateTo: date("2026-01-31"), DaysBack: 1},
			date("2026-01-01"), date("2026-01-31"),
		},
		{
			"explicit start only",
			FilterCriteria{DateFrom: date("2026-02-10"), DaysBack: 1},
			date("2026-02-10"), now,
		},
		{
			"explicit end only uses relative start",
			FilterCriteria{DateTo: date("2026-02-14"), DaysBack: 2},
			date("2026-02-13"), date("2026-02-14"),
		},
		{
			"swaps inverted bounds",
			FilterCriteria{DateFrom: date("2026-02-20"), DateTo: date("2026-02-10"), DaysBack: 1},
			date("2026-02-10"), date("2026-02-20"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.criteria.DateWindow(now)
			if !from.Equal(tt.wantFrom) || !to.Equal(tt.wantTo) {
				t.Errorf("DateWindow() = %s..%s, want %s..%s",
					from.Format("2006-01-02"), to.Format("2006-01-02"),
					tt.wantFrom.Format("2006-01-02"), tt.wantTo.Format("2006-01-02"))
			}
		})
	}
}

func TestHasSource(t *testing.T) {
	c := FilterCriteria{Sources: []Source{SourceArxiv}}
	if !c.HasSource(SourceArxiv) {
		t.Error("HasSource(arxiv) = false, want true")
	}
	if c.HasSource(SourceHuggingFace) {
		t.Error("HasSource(huggingface) = true, want false")
	}
}

func TestPaperID(t *testing.T) {
	tests := []struct {
		name string
		meta PaperMetadata
		want string
	}{
		{"arxiv id wins", PaperMetadata{ArxivID: "2602.01234", Title: "Some Paper"}, "2602.01234"},
		{"falls back to title", PaperMetadata{Title: "Short Title"}, "Short Title"},
		{
			"long title truncated",
			PaperMetadata{Title: strings.Repeat("x", 60)},
			strings.Repeat("x", 40),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.ID(); got != tt.want {
				t.Errorf("ID() = %q, want %q", got, tt.want)
			}
		})
	}
}
