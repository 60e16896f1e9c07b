// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for the paper-review
// pipeline: paper records, novelty scores, filter criteria, summaries,
// and per-stage configuration.
package types

import "time"

// Source identifies which feed a paper came from.
type Source string

const (
	// SourceArxiv is the arXiv preprint repository.
	SourceArxiv Source = "arxiv"

	// SourceHuggingFace is the Hugging Face daily-papers listing.
	SourceHuggingFace Source = "huggingface"
)

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	return s == SourceArxiv || s == SourceHuggingFace
}

// PaperMetadata is the canonical representation of a paper from any
// source. Adapters populate the source-specific fields they know about;
// the rest stay at their zero values.
type PaperMetadata struct {
	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Published is the publication or preprint date.
	Published time.Time `json:"published" yaml:"published"`

	// Updated is the last revision date, if the source reports one.
	Updated time.Time `json:"updated,omitempty" yaml:"updated,omitempty"`

	// ArxivID is the arXiv identifier (e.g. "2511.14899"). Hugging Face
	// entries usually carry one too since the listing links back to arXiv.
	ArxivID string `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`

	// PrimaryCategory is the main subject classification.
	PrimaryCategory string `json:"primary_category" yaml:"primary_category"`

	// Categories lists all subject classifications.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// PDFURL is the document URL, when the source provides one.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// DOI is the digital object identifier, when known.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// JournalRef is the journal reference string, when known.
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`

	// Comment is the author comment field from the source entry.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Source identifies which feed produced this record.
	Source Source `json:"source" yaml:"source"`

	// Tags is the generic tag vocabulary: categories for arXiv papers,
	// AI keywords for Hugging Face papers.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Upvotes is the community upvote count (Hugging Face only).
	Upvotes int `json:"upvotes,omitempty" yaml:"upvotes,omitempty"`

	// NumComments is the comment count (Hugging Face only).
	NumComments int `json:"num_comments,omitempty" yaml:"num_comments,omitempty"`

	// GitHubRepo is the linked code repository URL, when listed.
	GitHubRepo string `json:"github_repo,omitempty" yaml:"github_repo,omitempty"`

	// GitHubStars is the star count of the linked repository.
	GitHubStars int `json:"github_stars,omitempty" yaml:"github_stars,omitempty"`

	// ProjectPage is the project page URL, when listed.
	ProjectPage string `json:"project_page,omitempty" yaml:"project_page,omitempty"`

	// Thumbnail is the preview image URL, when listed.
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// ID returns the best available identifier for the paper: the arXiv ID
// when present, otherwise a truncated title.
func (m PaperMetadata) ID() string {
	if m.ArxivID != "" {
		return m.ArxivID
	}
	title := m.Title
	if len(title) > 40 {
		title = title[:40]
	}
	return title
}

// NoveltyScore holds the LLM-assessed rating for one paper. TotalScore
// is always the arithmetic mean of the three sub-scores, recomputed by
// the ranker; a total supplied by the model is never trusted.
type NoveltyScore struct {
	// TotalScore is the mean of Novelty, Impact, and Clarity.
	TotalScore float64 `json:"total_score" yaml:"total_score"`

	// Novelty rates how new and innovative the work is (1-10).
	Novelty float64 `json:"novelty" yaml:"novelty"`

	// Impact rates the likely influence on the field (1-10).
	Impact float64 `json:"impact" yaml:"impact"`

	// Clarity rates how well the abstract is written (1-10).
	Clarity float64 `json:"clarity" yaml:"clarity"`

	// Reasoning is the model's short justification, or a failure
	// description when the sentinel score was substituted.
	Reasoning string `json:"reasoning" yaml:"reasoning"`
}

// Paper aggregates metadata with the artifacts attached by later
// pipeline stages. A Paper owns its artifacts exclusively; stages mutate
// it in place until it lands in a report, after which it is read-only.
type Paper struct {
	// Metadata is the source-normalized paper record.
	Metadata PaperMetadata `json:"metadata" yaml:"metadata"`

	// PDFPath is the local filesystem path to the downloaded PDF.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// FullText is the text extracted from the PDF.
	FullText string `json:"full_text,omitempty" yaml:"full_text,omitempty"`

	// ImagePaths lists extracted figure files in extraction order.
	ImagePaths []string `json:"image_paths,omitempty" yaml:"image_paths,omitempty"`

	// NoveltyScore is attached by the ranker. Nil for papers that were
	// never ranked.
	NoveltyScore *NoveltyScore `json:"novelty_score,omitempty" yaml:"novelty_score,omitempty"`
}
