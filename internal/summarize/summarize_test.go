// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/paper-review/internal/llm"
	"github.com/pdiddy/paper-review/pkg/types"
)

type mockLLM struct {
	response string
	err      error
	prompts  []string
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ llm.Options) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

func summaryPaper(id, title string, authors ...string) *types.Paper {
	return &types.Paper{
		Metadata: types.PaperMetadata{
			ArxivID:  id,
			Title:    title,
			Authors:  authors,
			Abstract: "abstract of " + title,
			Source:   types.SourceArxiv,
		},
		NoveltyScore: &types.NoveltyScore{TotalScore: 7.5},
		ImagePaths:   []string{id + "_img_1.png"},
	}
}

func TestSummarize(t *testing.T) {
	mock := &mockLLM{response: "  1. Key Highlights: great paper.  "}
	s := &Summarizer{LLM: mock}

	papers := []*types.Paper{
		summaryPaper("2602.1", "First Paper", "Alice"),
		summaryPaper("2602.2", "Second Paper", "Bob"),
	}
	summaries := s.Summarize(context.Background(), papers, &bytes.Buffer{})

	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	// Input order preserved.
	if summaries[0].PaperID != "2602.1" || summaries[1].PaperID != "2602.2" {
		t.Errorf("order = %q, %q", summaries[0].PaperID, summaries[1].PaperID)
	}
	if summaries[0].Summary != "1. Key Highlights: great paper." {
		t.Errorf("Summary = %q, not trimmed", summaries[0].Summary)
	}
	if summaries[0].NoveltyScore == nil || summaries[0].NoveltyScore.TotalScore != 7.5 {
		t.Error("novelty score not carried into the summary")
	}
	if len(summaries[0].ImagePaths) != 1 {
		t.Error("image paths not carried into the summary")
	}
}

func TestSummarizeDegradesOnFailure(t *testing.T) {
	mock := &mockLLM{err: errors.New("model offline")}
	s := &Summarizer{LLM: mock}

	var log bytes.Buffer
	summaries := s.Summarize(context.Background(), []*types.Paper{
		summaryPaper("2602.9", "Doomed Paper", "Carol"),
	}, &log)

	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want the paper kept", len(summaries))
	}
	if !strings.Contains(summaries[0].Summary, "Error creating summary") {
		t.Errorf("Summary = %q, want error description", summaries[0].Summary)
	}
	if !strings.Contains(summaries[0].Summary, "model offline") {
		t.Errorf("Summary = %q, want the cause included", summaries[0].Summary)
	}
	if !strings.Contains(log.String(), "warning") {
		t.Errorf("log = %q, want a warning", log.String())
	}
}

func TestSummarizePromptLimitsAuthors(t *testing.T) {
	mock := &mockLLM{response: "ok"}
	s := &Summarizer{LLM: mock}

	s.Summarize(context.Background(), []*types.Paper{
		summaryPaper("2602.5", "Crowded Paper", "A1", "A2", "A3", "A4", "A5"),
	}, &bytes.Buffer{})

	if len(mock.prompts) != 1 {
		t.Fatalf("got %d prompts", len(mock.prompts))
	}
	prompt := mock.prompts[0]
	if !strings.Contains(prompt, "A1, A2, A3") {
		t.Errorf("prompt = %q, want first three authors", prompt)
	}
	if strings.Contains(prompt, "A4") {
		t.Error("prompt lists more than three authors")
	}
	if !strings.Contains(prompt, "Crowded Paper") {
		t.Error("prompt missing title")
	}
}
