// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-review/internal/content"
	"github.com/pdiddy/paper-review/internal/fetch"
	"github.com/pdiddy/paper-review/internal/llm"
	"github.com/pdiddy/paper-review/internal/pipeline"
	"github.com/pdiddy/paper-review/internal/rank"
	"github.com/pdiddy/paper-review/internal/summarize"
	"github.com/pdiddy/paper-review/pkg/types"
)

const (
	defaultHTTPTimeout = 60 * time.Second
	defaultUserAgent   = "paper-review/0.1"
	defaultModel       = "qwen3:8b"
)

// loadConfig unmarshals the viper configuration and fills the defaults
// that no config file or environment variable set.
func loadConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}

	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = defaultHTTPTimeout
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = defaultUserAgent
	}
	if len(cfg.Fetch.DefaultCategories) == 0 {
		cfg.Fetch.DefaultCategories = []string{"cs.AI", "cs.LG", "cs.CL"}
	}

	if cfg.Content.Timeout == 0 {
		cfg.Content.Timeout = defaultHTTPTimeout
	}
	if cfg.Content.UserAgent == "" {
		cfg.Content.UserAgent = defaultUserAgent
	}
	if cfg.Content.PapersDir == "" {
		cfg.Content.PapersDir = "papers"
	}
	if cfg.Content.ImagesDir == "" {
		cfg.Content.ImagesDir = "images"
	}

	if cfg.Rank.Model == "" {
		cfg.Rank.Model = defaultModel
	}
	if cfg.Summary.Model == "" {
		cfg.Summary.Model = cfg.Rank.Model
	}
	if cfg.Summary.BaseURL == "" {
		cfg.Summary.BaseURL = cfg.Rank.BaseURL
	}
	if cfg.Summary.Timeout == 0 {
		cfg.Summary.Timeout = cfg.Rank.Timeout
	}

	if cfg.Store.ReportsDir == "" {
		cfg.Store.ReportsDir = "reports"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}

	return cfg, nil
}

// buildSources constructs the feed adapters.
func buildSources(cfg types.PipelineConfig) []fetch.Source {
	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	return []fetch.Source{
		&fetch.Arxiv{Client: client, Config: cfg.Fetch},
		&fetch.HuggingFace{Client: client, Config: cfg.Fetch},
	}
}

// buildPipeline assembles the full pipeline. The content processor is
// only constructed when processContent is set, so runs without content
// processing work on hosts without the poppler tools.
func buildPipeline(cfg types.PipelineConfig, processContent bool) (*pipeline.Pipeline, error) {
	pl := &pipeline.Pipeline{
		Sources: buildSources(cfg),
		Ranker: &rank.Ranker{
			LLM: &llm.Ollama{
				BaseURL: cfg.Rank.BaseURL,
				Model:   cfg.Rank.Model,
				Timeout: cfg.Rank.Timeout,
			},
			Config: cfg.Rank,
		},
		Summarizer: &summarize.Summarizer{
			LLM: &llm.Ollama{
				BaseURL: cfg.Summary.BaseURL,
				Model:   cfg.Summary.Model,
				Timeout: cfg.Summary.Timeout,
			},
			Config: cfg.Summary,
		},
	}

	if processContent {
		extractor, err := content.NewPoppler()
		if err != nil {
			return nil, fmt.Errorf("content processing unavailable: %w", err)
		}
		pl.Processor = &content.Processor{
			Client:    &http.Client{Timeout: cfg.Content.Timeout},
			Extractor: extractor,
			Config:    cfg.Content,
		}
	}

	return pl, nil
}

// addCriteriaFlags registers the filter flags shared by fetch and run.
func addCriteriaFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("sources", nil, "sources to fetch from (arxiv, huggingface; default both)")
	cmd.Flags().StringSlice("categories", nil, "arXiv categories to match (e.g. cs.AI,cs.LG)")
	cmd.Flags().String("category-mode", "", "category match mode: AND or OR (default OR)")
	cmd.Flags().StringSlice("keywords", nil, "listing keywords to match")
	cmd.Flags().String("keyword-mode", "", "keyword match mode: AND or OR (default OR)")
	cmd.Flags().Int("days-back", 0, "relative date window in days (default 1)")
	cmd.Flags().String("from", "", "date window start (YYYY-MM-DD, overrides --days-back)")
	cmd.Flags().String("to", "", "date window end (YYYY-MM-DD, default today)")
	cmd.Flags().Int("min-upvotes", 0, "minimum listing upvotes")
	cmd.Flags().Int("max-listed", 0, "maximum listing entries to keep (default 50)")
}

// criteriaFromFlags builds filter criteria from the defaults overlaid
// with the command's flags.
func criteriaFromFlags(cmd *cobra.Command) (types.FilterCriteria, error) {
	criteria := types.DefaultCriteria()

	if sources, _ := cmd.Flags().GetStringSlice("sources"); len(sources) > 0 {
		criteria.Sources = nil
		for _, s := range sources {
			criteria.Sources = append(criteria.Sources, types.Source(strings.ToLower(strings.TrimSpace(s))))
		}
	}
	if cats, _ := cmd.Flags().GetStringSlice("categories"); len(cats) > 0 {
		criteria.Categories = cats
	}
	if mode, _ := cmd.Flags().GetString("category-mode"); mode != "" {
		criteria.CategoryMode = types.FilterMode(strings.ToUpper(mode))
	}
	if kws, _ := cmd.Flags().GetStringSlice("keywords"); len(kws) > 0 {
		criteria.Keywords = kws
	}
	if mode, _ := cmd.Flags().GetString("keyword-mode"); mode != "" {
		criteria.KeywordMode = types.FilterMode(strings.ToUpper(mode))
	}
	if days, _ := cmd.Flags().GetInt("days-back"); days > 0 {
		criteria.DaysBack = days
	}
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return criteria, fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		criteria.DateFrom = t
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return criteria, fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		criteria.DateTo = t
	}
	if upvotes, _ := cmd.Flags().GetInt("min-upvotes"); upvotes > 0 {
		criteria.MinUpvotes = upvotes
	}
	if maxListed, _ := cmd.Flags().GetInt("max-listed"); maxListed > 0 {
		criteria.MaxListed = maxListed
	}

	return criteria, nil
}
