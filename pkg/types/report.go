// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PaperSummary pairs one paper with its generated summary text.
type PaperSummary struct {
	// PaperID identifies the paper (arXiv ID or truncated title).
	PaperID string `json:"paper_id" yaml:"paper_id"`

	// Metadata is the summarized paper's metadata.
	Metadata PaperMetadata `json:"metadata" yaml:"metadata"`

	// Summary is the generated summary text. On generation failure this
	// holds a short error description instead.
	Summary string `json:"summary" yaml:"summary"`

	// ImagePaths lists figures extracted for the paper.
	ImagePaths []string `json:"image_paths,omitempty" yaml:"image_paths,omitempty"`

	// NoveltyScore carries the ranking score, when the paper was ranked.
	NoveltyScore *NoveltyScore `json:"novelty_score,omitempty" yaml:"novelty_score,omitempty"`
}

// SummaryReport is the aggregate produced by one pipeline run. It is
// immutable after construction.
type SummaryReport struct {
	// Date is the generation date (YYYY-MM-DD).
	Date string `json:"date" yaml:"date"`

	// TotalPapers is the number of summarized papers.
	TotalPapers int `json:"total_papers" yaml:"total_papers"`

	// ArxivCount is the number of papers from the arXiv source.
	ArxivCount int `json:"arxiv_count" yaml:"arxiv_count"`

	// HuggingFaceCount is the number of papers from the Hugging Face source.
	HuggingFaceCount int `json:"huggingface_count" yaml:"huggingface_count"`

	// Summaries lists the per-paper summaries in selection order.
	Summaries []PaperSummary `json:"summaries" yaml:"summaries"`
}
