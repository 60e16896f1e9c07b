// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize generates structured per-paper summaries with the
// LLM. A failed generation degrades to an error-description summary so
// the paper still appears in the report.
package summarize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/pdiddy/paper-review/internal/llm"
	"github.com/pdiddy/paper-review/pkg/types"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
)

// summaryPromptTmpl asks for a fixed five-section summary built from
// the title, lead authors, and abstract.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`Please analyze the following paper and create a structured summary.

Paper Title: {{.Title}}
Authors: {{.Authors}}
Abstract: {{.Abstract}}

Please summarize in the following format:

1. Key Highlights (2-3 sentence core summary)

2. Research Objective (problem this research aims to solve)

3. Methodology (core techniques or approaches used)

4. Main Results (key findings or performance improvements)

5. Significance & Impact (academic and practical value of this research)

Please clearly separate each section.
`))

// summarySystemPrompt primes the model for structured output.
const summarySystemPrompt = "You are an expert AI researcher who excels at summarizing academic papers in a clear and structured way."

// Summarizer generates summaries for selected papers.
type Summarizer struct {
	LLM    llm.Client
	Config types.SummaryConfig
}

// Summarize produces one PaperSummary per input paper, in input order.
// Generation failures are logged and yield a summary holding the error
// description; the paper is never dropped.
func (s *Summarizer) Summarize(ctx context.Context, papers []*types.Paper, w io.Writer) []types.PaperSummary {
	fmt.Fprintf(w, "summarizing %d papers\n", len(papers))

	summaries := make([]types.PaperSummary, 0, len(papers))
	for _, p := range papers {
		summaries = append(summaries, s.summarizePaper(ctx, p, w))
	}
	return summaries
}

// summarizePaper generates the summary for a single paper.
func (s *Summarizer) summarizePaper(ctx context.Context, paper *types.Paper, w io.Writer) types.PaperSummary {
	id := paper.Metadata.ID()

	summary := types.PaperSummary{
		PaperID:      id,
		Metadata:     paper.Metadata,
		ImagePaths:   paper.ImagePaths,
		NoveltyScore: paper.NoveltyScore,
	}

	prompt, err := renderSummaryPrompt(paper.Metadata)
	if err != nil {
		fmt.Fprintf(w, "warning: summary prompt for %s: %v\n", id, err)
		summary.Summary = fmt.Sprintf("Error creating summary: %v", err)
		return summary
	}

	temperature := s.Config.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens := s.Config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	text, err := s.LLM.Generate(ctx, prompt, llm.Options{
		SystemPrompt: summarySystemPrompt,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
	})
	if err != nil {
		fmt.Fprintf(w, "warning: summarizing %s: %v\n", id, err)
		summary.Summary = fmt.Sprintf("Error creating summary: %v", err)
		return summary
	}

	summary.Summary = strings.TrimSpace(text)
	return summary
}

// renderSummaryPrompt executes the summary template. Only the first
// three authors are listed to keep the prompt short.
func renderSummaryPrompt(meta types.PaperMetadata) (string, error) {
	authors := meta.Authors
	if len(authors) > 3 {
		authors = authors[:3]
	}

	var buf bytes.Buffer
	err := summaryPromptTmpl.Execute(&buf, struct {
		Title    string
		Authors  string
		Abstract string
	}{
		Title:    meta.Title,
		Authors:  strings.Join(authors, ", "),
		Abstract: meta.Abstract,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
