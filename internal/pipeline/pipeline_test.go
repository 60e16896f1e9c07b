// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/pdiddy/paper-review/internal/fetch"
	"github.com/pdiddy/paper-review/pkg/types"
)

type stubSource struct {
	name   types.Source
	papers []*types.Paper
	err    error
}

func (s *stubSource) Name() types.Source { return s.name }

func (s *stubSource) Fetch(context.Context, types.FilterCriteria, io.Writer) ([]*types.Paper, error) {
	return s.papers, s.err
}

// stubRanker keeps the first topN papers and records whether it ran.
type stubRanker struct {
	called bool
	got    []*types.Paper
}

func (r *stubRanker) Rank(_ context.Context, papers []*types.Paper, criteria types.FilterCriteria, _ io.Writer) []*types.Paper {
	r.called = true
	r.got = papers
	if len(papers) > criteria.TopN {
		return papers[:criteria.TopN]
	}
	return papers
}

type stubProcessor struct {
	got []*types.Paper
}

func (p *stubProcessor) ProcessAll(_ context.Context, papers []*types.Paper, _ io.Writer) {
	p.got = papers
	for _, paper := range papers {
		paper.FullText = "processed"
	}
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(_ context.Context, papers []*types.Paper, _ io.Writer) []types.PaperSummary {
	summaries := make([]types.PaperSummary, 0, len(papers))
	for _, p := range papers {
		summaries = append(summaries, types.PaperSummary{
			PaperID:  p.Metadata.ID(),
			Metadata: p.Metadata,
			Summary:  "summary of " + p.Metadata.Title,
		})
	}
	return summaries
}

func arxivPaper(id string) *types.Paper {
	return &types.Paper{Metadata: types.PaperMetadata{
		ArxivID: id, Title: "arxiv " + id, Source: types.SourceArxiv,
	}}
}

func hfPaper(id string) *types.Paper {
	return &types.Paper{Metadata: types.PaperMetadata{
		ArxivID: id, Title: "hf " + id, Source: types.SourceHuggingFace,
	}}
}

func fixedNow() time.Time {
	return time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
}

func newTestPipeline(sources ...fetch.Source) (*Pipeline, *stubRanker, *stubProcessor) {
	ranker := &stubRanker{}
	processor := &stubProcessor{}
	return &Pipeline{
		Sources:    sources,
		Ranker:     ranker,
		Processor:  processor,
		Summarizer: stubSummarizer{},
		Now:        fixedNow,
	}, ranker, processor
}

func TestRunFullPipeline(t *testing.T) {
	pl, ranker, processor := newTestPipeline(
		&stubSource{name: types.SourceArxiv, papers: []*types.Paper{
			arxivPaper("a1"), arxivPaper("a2"), arxivPaper("a3"),
		}},
		&stubSource{name: types.SourceHuggingFace, papers: []*types.Paper{hfPaper("h1")}},
	)

	criteria := types.DefaultCriteria()
	criteria.TopN = 2

	report, err := pl.Run(context.Background(), criteria, true, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Date != "2026-02-15" {
		t.Errorf("Date = %q", report.Date)
	}
	// 2 ranked arXiv papers + 1 listing paper.
	if report.TotalPapers != 3 || report.ArxivCount != 2 || report.HuggingFaceCount != 1 {
		t.Errorf("counts = %d/%d/%d", report.TotalPapers, report.ArxivCount, report.HuggingFaceCount)
	}

	// Ranking sees only the arXiv partition.
	if !ranker.called {
		t.Fatal("ranker not called")
	}
	for _, p := range ranker.got {
		if p.Metadata.Source != types.SourceArxiv {
			t.Errorf("ranker saw %s paper %s", p.Metadata.Source, p.Metadata.ArxivID)
		}
	}

	// Content processing covers the ranked arXiv papers only.
	if len(processor.got) != 2 {
		t.Fatalf("processor saw %d papers, want 2", len(processor.got))
	}
	for _, p := range processor.got {
		if p.Metadata.Source != types.SourceArxiv {
			t.Errorf("processor saw %s paper", p.Metadata.Source)
		}
	}
}

func TestRunInvalidCriteria(t *testing.T) {
	pl, _, _ := newTestPipeline()
	criteria := types.DefaultCriteria()
	criteria.Sources = nil

	_, err := pl.Run(context.Background(), criteria, false, &bytes.Buffer{})
	if err == nil {
		t.Fatal("Run() = nil error, want validation error")
	}
}

func TestRunEmptyFetch(t *testing.T) {
	pl, ranker, _ := newTestPipeline(
		&stubSource{name: types.SourceArxiv, err: errors.New("down")},
		&stubSource{name: types.SourceHuggingFace},
	)

	report, err := pl.Run(context.Background(), types.DefaultCriteria(), false, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run() error = %v, want empty report without error", err)
	}
	if report.TotalPapers != 0 {
		t.Errorf("TotalPapers = %d", report.TotalPapers)
	}
	if report.Summaries == nil {
		t.Error("Summaries is nil, want empty slice")
	}
	if ranker.called {
		t.Error("ranker called on empty fetch")
	}
}

func TestRunRankingDisabled(t *testing.T) {
	pl, ranker, _ := newTestPipeline(
		&stubSource{name: types.SourceArxiv, papers: []*types.Paper{
			arxivPaper("a1"), arxivPaper("a2"),
		}},
	)

	criteria := types.DefaultCriteria()
	criteria.RankingEnabled = false

	report, err := pl.Run(context.Background(), criteria, false, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ranker.called {
		t.Error("ranker called with ranking disabled")
	}
	if report.TotalPapers != 2 {
		t.Errorf("TotalPapers = %d, want all papers kept", report.TotalPapers)
	}
}

func TestRunNoContentProcessing(t *testing.T) {
	pl, _, processor := newTestPipeline(
		&stubSource{name: types.SourceArxiv, papers: []*types.Paper{arxivPaper("a1")}},
	)

	if _, err := pl.Run(context.Background(), types.DefaultCriteria(), false, &bytes.Buffer{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if processor.got != nil {
		t.Error("processor called with processContent=false")
	}
}

func TestRunListingOnlySkipsRanking(t *testing.T) {
	pl, ranker, processor := newTestPipeline(
		&stubSource{name: types.SourceHuggingFace, papers: []*types.Paper{hfPaper("h1"), hfPaper("h2")}},
	)

	criteria := types.DefaultCriteria()
	criteria.Sources = []types.Source{types.SourceHuggingFace}

	report, err := pl.Run(context.Background(), criteria, true, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ranker.called {
		t.Error("ranker called with no arXiv papers")
	}
	if processor.got != nil {
		t.Error("processor called with no ranked arXiv papers")
	}
	if report.HuggingFaceCount != 2 || report.ArxivCount != 0 {
		t.Errorf("counts = %d/%d", report.ArxivCount, report.HuggingFaceCount)
	}
}
