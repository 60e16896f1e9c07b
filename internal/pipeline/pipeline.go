// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the stages of one paper-review run:
// fetch, rank, content processing, summarization, report assembly.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/paper-review/internal/fetch"
	"github.com/pdiddy/paper-review/pkg/types"
)

// Ranker selects the top papers from a candidate batch.
type Ranker interface {
	Rank(ctx context.Context, papers []*types.Paper, criteria types.FilterCriteria, w io.Writer) []*types.Paper
}

// Processor attaches downloaded content to papers in place.
type Processor interface {
	ProcessAll(ctx context.Context, papers []*types.Paper, w io.Writer)
}

// Summarizer generates per-paper summaries.
type Summarizer interface {
	Summarize(ctx context.Context, papers []*types.Paper, w io.Writer) []types.PaperSummary
}

// Pipeline wires the stages together. Sources are fetched through the
// fetch package; the remaining stages are injected so tests can supply
// mocks.
type Pipeline struct {
	Sources    []fetch.Source
	Ranker     Ranker
	Processor  Processor
	Summarizer Summarizer

	// Now supplies the report date. Nil means time.Now.
	Now func() time.Time
}

// Run executes the full pipeline for one set of criteria. Only criteria
// validation is fatal; every later failure degrades per source or per
// paper. When processContent is set, PDFs are downloaded and content
// extracted for the ranked arXiv papers only; listing papers never go
// through content processing.
func (pl *Pipeline) Run(ctx context.Context, criteria types.FilterCriteria, processContent bool, w io.Writer) (types.SummaryReport, error) {
	if err := criteria.Validate(); err != nil {
		return types.SummaryReport{}, err
	}

	now := time.Now
	if pl.Now != nil {
		now = pl.Now
	}

	fmt.Fprintf(w, "starting run with sources %v\n", criteria.Sources)

	papers := fetch.All(ctx, pl.Sources, criteria, w)
	if len(papers) == 0 {
		fmt.Fprintln(w, "no papers fetched from any source")
		return emptyReport(now()), nil
	}
	fmt.Fprintf(w, "fetched %d papers\n", len(papers))

	// Only the arXiv partition is rankable; listing papers pass through
	// untouched.
	arxivPapers, rest := fetch.Partition(papers, types.SourceArxiv)

	ranked := arxivPapers
	if criteria.RankingEnabled && len(arxivPapers) > 0 {
		ranked = pl.Ranker.Rank(ctx, arxivPapers, criteria, w)
	}

	selected := make([]*types.Paper, 0, len(ranked)+len(rest))
	selected = append(selected, ranked...)
	selected = append(selected, rest...)
	fmt.Fprintf(w, "selected %d papers (arxiv: %d, huggingface: %d)\n",
		len(selected), len(ranked), len(rest))

	if processContent && len(ranked) > 0 && pl.Processor != nil {
		fmt.Fprintf(w, "processing content for %d papers\n", len(ranked))
		pl.Processor.ProcessAll(ctx, ranked, w)
	}

	summaries := pl.Summarizer.Summarize(ctx, selected, w)

	report := buildReport(now(), summaries)
	fmt.Fprintf(w, "run completed: %d papers (arxiv: %d, huggingface: %d)\n",
		report.TotalPapers, report.ArxivCount, report.HuggingFaceCount)
	return report, nil
}

// buildReport assembles the report aggregate with per-source counts.
func buildReport(now time.Time, summaries []types.PaperSummary) types.SummaryReport {
	report := types.SummaryReport{
		Date:        now.Format("2006-01-02"),
		TotalPapers: len(summaries),
		Summaries:   summaries,
	}
	for _, s := range summaries {
		switch s.Metadata.Source {
		case types.SourceArxiv:
			report.ArxivCount++
		case types.SourceHuggingFace:
			report.HuggingFaceCount++
		}
	}
	return report
}

// emptyReport is the no-result run outcome; it is not an error.
func emptyReport(now time.Time) types.SummaryReport {
	return types.SummaryReport{
		Date:      now.Format("2006-01-02"),
		Summaries: []types.PaperSummary{},
	}
}
