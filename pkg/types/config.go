package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-review/0.2").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// LLMConfig holds shared settings for stages that call the inference endpoint.
type LLMConfig struct {
	// BaseURL is the Ollama server address (default "http://localhost:11434").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Model is the model identifier (e.g. "qwen3:8b").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// Timeout is the per-call generation timeout (default 120s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxResults caps how many entries the arXiv query requests (default 100).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// DefaultCategories is the arXiv query fallback when the criteria
	// name no categories (e.g. ["cs.LG"]).
	DefaultCategories []string `json:"default_categories" yaml:"default_categories" mapstructure:"default_categories"`
}

// ContentConfig holds settings for PDF download and content extraction.
type ContentConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// PapersDir is the directory for downloaded PDFs and metadata sidecars.
	PapersDir string `json:"papers_dir" yaml:"papers_dir" mapstructure:"papers_dir"`

	// ImagesDir is the directory for extracted figures.
	ImagesDir string `json:"images_dir" yaml:"images_dir" mapstructure:"images_dir"`

	// MaxImages caps how many figures are extracted per paper (default 3).
	MaxImages int `json:"max_images" yaml:"max_images" mapstructure:"max_images"`

	// MinImageWidth and MinImageHeight drop figures smaller than this.
	MinImageWidth  int `json:"min_image_width" yaml:"min_image_width" mapstructure:"min_image_width"`
	MinImageHeight int `json:"min_image_height" yaml:"min_image_height" mapstructure:"min_image_height"`

	// Concurrency bounds parallel per-paper processing (default 3).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// RankConfig holds settings for the novelty ranking stage.
type RankConfig struct {
	LLMConfig `yaml:",inline" mapstructure:",squash"`

	// Temperature is the sampling temperature for scoring calls. Kept low
	// so repeated runs score consistently (default 0.3).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// Concurrency bounds parallel scoring calls against the inference
	// endpoint (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// SummaryConfig holds settings for the summarization stage.
type SummaryConfig struct {
	LLMConfig `yaml:",inline" mapstructure:",squash"`

	// Temperature is the sampling temperature for summary calls (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens caps the generated summary length (default 2000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`
}

// StoreConfig holds settings for report persistence.
type StoreConfig struct {
	// ReportsDir is the directory holding the run database.
	ReportsDir string `json:"reports_dir" yaml:"reports_dir" mapstructure:"reports_dir"`
}

// ServerConfig holds settings for the web front end.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Content ContentConfig `json:"content" yaml:"content" mapstructure:"content"`
	Rank    RankConfig    `json:"rank" yaml:"rank" mapstructure:"rank"`
	Summary SummaryConfig `json:"summary" yaml:"summary" mapstructure:"summary"`
	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}
