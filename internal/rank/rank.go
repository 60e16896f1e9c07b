// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores candidate papers with the LLM and selects the
// top N by total novelty score. Scoring failures degrade per paper to a
// sentinel midpoint score; they never abort the batch.
package rank

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/pdiddy/paper-review/internal/llm"
	"github.com/pdiddy/paper-review/pkg/types"
)

// midpointScore is the neutral value substituted for missing fields and
// for papers whose scoring call failed.
const midpointScore = 5.0

const (
	defaultTemperature = 0.3
	defaultConcurrency = 4
	scoreMaxTokens     = 500
)

// ScoreResult is the outcome of scoring one paper: either a valid score
// or the error that prevented one. The sentinel substitution is an
// explicit branch on Failed, not a catch-all.
type ScoreResult struct {
	Score types.NoveltyScore
	Err   error
}

// Failed reports whether the scoring call did not produce a usable score.
func (r ScoreResult) Failed() bool { return r.Err != nil }

// Ranker ranks papers via per-paper LLM scoring calls.
type Ranker struct {
	LLM    llm.Client
	Config types.RankConfig
}

// Rank scores every paper, sorts by total score descending, and returns
// the first topN. When ranking is disabled or the input already fits in
// topN the input is returned untouched with no scoring calls made.
//
// Papers whose scoring fails stay in the running with the sentinel
// score attached. The sort is stable: equal totals keep their relative
// input order. The input slice's order is not mutated; papers are
// annotated in place with their scores.
func (r *Ranker) Rank(ctx context.Context, papers []*types.Paper, criteria types.FilterCriteria, w io.Writer) []*types.Paper {
	if !criteria.RankingEnabled {
		fmt.Fprintln(w, "novelty ranking disabled, keeping all papers")
		return papers
	}

	topN := criteria.TopN
	if len(papers) <= topN {
		fmt.Fprintf(w, "only %d papers, no ranking needed\n", len(papers))
		return papers
	}

	fmt.Fprintf(w, "ranking %d papers to select top %d\n", len(papers), topN)

	r.scoreAll(ctx, papers)

	ranked := make([]*types.Paper, len(papers))
	copy(ranked, papers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NoveltyScore.TotalScore > ranked[j].NoveltyScore.TotalScore
	})

	if criteria.MinScore > 0 {
		kept := ranked[:0]
		for _, p := range ranked {
			if p.NoveltyScore.TotalScore >= criteria.MinScore {
				kept = append(kept, p)
			}
		}
		ranked = kept
	}

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	for i, p := range ranked {
		if i >= 5 {
			break
		}
		title := p.Metadata.Title
		if len(title) > 60 {
			title = title[:60] + "..."
		}
		fmt.Fprintf(w, "  #%d: %s (score: %.1f)\n", i+1, title, p.NoveltyScore.TotalScore)
	}

	return ranked
}

// scoreAll scores each paper independently with bounded concurrency.
// Each paper is its own unit of work: one failure or slow call never
// affects a sibling. Results are written index-addressed, so no
// locking is needed beyond the WaitGroup.
func (r *Ranker) scoreAll(ctx context.Context, papers []*types.Paper) {
	concurrency := r.Config.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, p := range papers {
		wg.Add(1)
		go func(p *types.Paper) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result := r.ScorePaper(ctx, p)
			if result.Failed() {
				s := sentinelScore(result.Err)
				p.NoveltyScore = &s
				return
			}
			p.NoveltyScore = &result.Score
		}(p)
	}
	wg.Wait()
}

// ScorePaper runs the scoring procedure for a single paper. It never
// panics or propagates past its caller: every failure mode lands in the
// returned ScoreResult's Err.
func (r *Ranker) ScorePaper(ctx context.Context, paper *types.Paper) ScoreResult {
	prompt, err := renderScorePrompt(paper.Metadata.Title, paper.Metadata.Abstract)
	if err != nil {
		return ScoreResult{Err: fmt.Errorf("rendering prompt: %w", err)}
	}

	temperature := r.Config.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	raw, err := r.LLM.Generate(ctx, prompt, llm.Options{
		SystemPrompt: scoreSystemPrompt,
		Temperature:  temperature,
		MaxTokens:    scoreMaxTokens,
		JSONMode:     true,
	})
	if err != nil {
		return ScoreResult{Err: fmt.Errorf("scoring call: %w", err)}
	}

	novelty, impact, clarity, reasoning, err := parseScoreResponse(raw)
	if err != nil {
		return ScoreResult{Err: err}
	}

	return ScoreResult{Score: types.NoveltyScore{
		TotalScore: (novelty + impact + clarity) / 3.0,
		Novelty:    novelty,
		Impact:     impact,
		Clarity:    clarity,
		Reasoning:  reasoning,
	}}
}

// sentinelScore is the degraded-mode score attached when scoring fails:
// the midpoint on every axis with the failure as reasoning.
func sentinelScore(cause error) types.NoveltyScore {
	return types.NoveltyScore{
		TotalScore: midpointScore,
		Novelty:    midpointScore,
		Impact:     midpointScore,
		Clarity:    midpointScore,
		Reasoning:  fmt.Sprintf("scoring failed: %v", cause),
	}
}
