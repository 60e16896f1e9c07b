// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// FilterMode selects how a list of criterion values is matched against a
// paper's tag set.
type FilterMode string

const (
	// FilterAND requires every criterion value to be present.
	FilterAND FilterMode = "AND"

	// FilterOR requires at least one criterion value to be present.
	FilterOR FilterMode = "OR"
)

// orDefault returns the mode, falling back to OR when unset.
func (m FilterMode) orDefault() FilterMode {
	if m == "" {
		return FilterOR
	}
	return m
}

// FilterCriteria is the validated selection and ranking policy for one
// pipeline run. Construct it, call Validate, then treat it as read-only.
type FilterCriteria struct {
	// Sources lists the enabled feeds. Must be non-empty.
	Sources []Source `json:"sources" yaml:"sources"`

	// DateFrom is the explicit window start. Zero means derive the start
	// from DaysBack instead.
	DateFrom time.Time `json:"date_from,omitempty" yaml:"date_from,omitempty"`

	// DateTo is the explicit window end. Zero means now.
	DateTo time.Time `json:"date_to,omitempty" yaml:"date_to,omitempty"`

	// DaysBack is the relative window used when DateFrom is unset.
	DaysBack int `json:"days_back" yaml:"days_back"`

	// Categories filters arXiv papers by subject classification. Empty
	// means no category filter.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// CategoryMode selects AND or OR matching for Categories.
	CategoryMode FilterMode `json:"category_mode,omitempty" yaml:"category_mode,omitempty"`

	// Keywords filters Hugging Face papers by AI keyword. Empty means no
	// keyword filter.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// KeywordMode selects AND or OR matching for Keywords.
	KeywordMode FilterMode `json:"keyword_mode,omitempty" yaml:"keyword_mode,omitempty"`

	// MinUpvotes drops Hugging Face papers below this upvote count.
	// Zero disables the floor.
	MinUpvotes int `json:"min_upvotes" yaml:"min_upvotes"`

	// MaxListed caps how many papers the listing source returns.
	MaxListed int `json:"max_listed" yaml:"max_listed"`

	// RankingEnabled turns novelty ranking on or off.
	RankingEnabled bool `json:"ranking_enabled" yaml:"ranking_enabled"`

	// TopN is how many papers the ranker keeps.
	TopN int `json:"top_n" yaml:"top_n"`

	// MinScore is an optional floor on the total novelty score. Zero
	// means no floor.
	MinScore float64 `json:"min_score,omitempty" yaml:"min_score,omitempty"`
}

// DefaultCriteria returns criteria matching the service defaults: both
// sources, last day, OR filters, ranking on with a top-10 cut.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Sources:        []Source{SourceArxiv, SourceHuggingFace},
		DaysBack:       1,
		CategoryMode:   FilterOR,
		KeywordMode:    FilterOR,
		MaxListed:      50,
		RankingEnabled: true,
		TopN:           10,
	}
}

// Validate checks the criteria for construction errors. Validation
// failures are fatal to the run; nothing here is silently defaulted
// except the two filter modes, which fall back to OR.
func (c *FilterCriteria) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("criteria: at least one source must be enabled")
	}
	for _, s := range c.Sources {
		if !s.Valid() {
			return fmt.Errorf("criteria: unknown source %q", s)
		}
	}
	if c.DaysBack < 1 {
		return fmt.Errorf("criteria: days_back must be >= 1, got %d", c.DaysBack)
	}
	if !c.DateFrom.IsZero() && !c.DateTo.IsZero() && c.DateTo.Before(c.DateFrom) {
		return fmt.Errorf("criteria: date_to %s precedes date_from %s",
			c.DateTo.Format("2006-01-02"), c.DateFrom.Format("2006-01-02"))
	}
	switch c.CategoryMode.orDefault() {
	case FilterAND, FilterOR:
	default:
		return fmt.Errorf("criteria: invalid category mode %q", c.CategoryMode)
	}
	switch c.KeywordMode.orDefault() {
	case FilterAND, FilterOR:
	default:
		return fmt.Errorf("criteria: invalid keyword mode %q", c.KeywordMode)
	}
	if c.MinUpvotes < 0 {
		return fmt.Errorf("criteria: min_upvotes must be >= 0, got %d", c.MinUpvotes)
	}
	if c.MaxListed < 1 {
		return fmt.Errorf("criteria: max_listed must be >= 1, got %d", c.MaxListed)
	}
	if c.TopN < 1 {
		return fmt.Errorf("criteria: top_n must be >= 1, got %d", c.TopN)
	}
	if c.MinScore != 0 && (c.MinScore < 1.0 || c.MinScore > 10.0) {
		return fmt.Errorf("criteria: min_score must be in [1,10], got %g", c.MinScore)
	}
	c.CategoryMode = c.CategoryMode.orDefault()
	c.KeywordMode = c.KeywordMode.orDefault()
	return nil
}

// HasSource reports whether the given source is enabled.
func (c FilterCriteria) HasSource(s Source) bool {
	for _, enabled := range c.Sources {
		if enabled == s {
			return true
		}
	}
	return false
}

// DateWindow resolves the date window relative to now. Explicit bounds
// take precedence per bound; DaysBack fills in a missing start and the
// end defaults to now. The returned window always satisfies from <= to.
func (c FilterCriteria) DateWindow(now time.Time) (from, to time.Time) {
	from = c.DateFrom
	if from.IsZero() {
		from = now.AddDate(0, 0, -c.DaysBack)
	}
	to = c.DateTo
	if to.IsZero() {
		to = now
	}
	if to.Before(from) {
		from, to = to, from
	}
	return from, to
}
