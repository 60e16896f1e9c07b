// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-review/pkg/types"
)

// FormatTable writes the report as a human-readable table to w.
func FormatTable(report types.SummaryReport, w io.Writer) {
	if len(report.Summaries) == 0 {
		fmt.Fprintln(w, "No papers in report.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-6s  %-7s  %s\n",
		"Rank", "Title", "Authors", "Score", "Votes", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, s := range report.Summaries {
		title := truncate(s.Metadata.Title, 60)
		score := ""
		if s.NoveltyScore != nil {
			score = fmt.Sprintf("%.1f", s.NoveltyScore.TotalScore)
		}
		votes := ""
		if s.Metadata.Source == types.SourceHuggingFace {
			votes = fmt.Sprintf("%d", s.Metadata.Upvotes)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-6s  %-7s  %s\n",
			i+1, title, formatAuthors(s.Metadata.Authors), score, votes, s.Metadata.Source)
	}

	fmt.Fprintf(w, "\n%d papers (arxiv: %d, huggingface: %d)\n",
		report.TotalPapers, report.ArxivCount, report.HuggingFaceCount)
}

// FormatJSON writes the report as indented JSON to w.
func FormatJSON(report types.SummaryReport, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// FormatMarkdown writes the report as a Markdown digest to w: a header
// with the per-source counts, then one section per paper.
func FormatMarkdown(report types.SummaryReport, w io.Writer) {
	fmt.Fprintf(w, "# Paper Review %s\n\n", report.Date)
	fmt.Fprintf(w, "%d papers (arXiv: %d, Hugging Face: %d)\n\n",
		report.TotalPapers, report.ArxivCount, report.HuggingFaceCount)

	for i, s := range report.Summaries {
		fmt.Fprintf(w, "## %d. %s\n\n", i+1, s.Metadata.Title)

		if len(s.Metadata.Authors) > 0 {
			fmt.Fprintf(w, "**Authors:** %s\n\n", joinAuthors(s.Metadata.Authors))
		}
		fmt.Fprintf(w, "**Source:** %s", s.Metadata.Source)
		if s.Metadata.ArxivID != "" {
			fmt.Fprintf(w, " · [arXiv:%s](https://arxiv.org/abs/%s)", s.Metadata.ArxivID, s.Metadata.ArxivID)
		}
		if s.Metadata.Source == types.SourceHuggingFace {
			fmt.Fprintf(w, " · %d upvotes", s.Metadata.Upvotes)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w)

		if s.NoveltyScore != nil {
			fmt.Fprintf(w, "**Score:** %.1f (novelty %.1f, impact %.1f, clarity %.1f)\n\n",
				s.NoveltyScore.TotalScore, s.NoveltyScore.Novelty,
				s.NoveltyScore.Impact, s.NoveltyScore.Clarity)
		}
		if s.Metadata.GitHubRepo != "" {
			fmt.Fprintf(w, "**Code:** %s", s.Metadata.GitHubRepo)
			if s.Metadata.GitHubStars > 0 {
				fmt.Fprintf(w, " (%d stars)", s.Metadata.GitHubStars)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w)
		}

		if s.Summary != "" {
			fmt.Fprintln(w, s.Summary)
			fmt.Fprintln(w)
		}

		for _, img := range s.ImagePaths {
			fmt.Fprintf(w, "![figure](%s)\n", img)
		}
		if len(s.ImagePaths) > 0 {
			fmt.Fprintln(w)
		}
	}
}

// ExportMarkdown writes the Markdown digest to reportsDir/report_<date>.md.
func ExportMarkdown(report types.SummaryReport, reportsDir string) (string, error) {
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}
	path := filepath.Join(reportsDir, fmt.Sprintf("report_%s.md", report.Date))

	var buf strings.Builder
	FormatMarkdown(report, &buf)
	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing markdown report: %w", err)
	}
	return path, nil
}

// ExportYAML writes the report to reportsDir/report_<date>.yaml.
func ExportYAML(report types.SummaryReport, reportsDir string) (string, error) {
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}
	path := filepath.Join(reportsDir, fmt.Sprintf("report_%s.yaml", report.Date))

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing yaml report: %w", err)
	}
	return path, nil
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func joinAuthors(authors []string) string {
	if len(authors) > 5 {
		return strings.Join(authors[:5], ", ") + " et al."
	}
	return strings.Join(authors, ", ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
