// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content downloads paper PDFs and extracts text and figures
// from them. Per-paper failures leave the paper with whatever artifacts
// were attached so far; they never drop it from the run.
package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-review/internal/httputil"
	"github.com/pdiddy/paper-review/pkg/types"
)

// DownloadPDF fetches the paper's PDF into papersDir, returning the
// local path. A pre-existing file short-circuits the download, so the
// operation is idempotent. The download writes to a temp file and
// renames into place, so a partial write is never observed as a
// complete PDF even under concurrent duplicate downloads.
func DownloadPDF(ctx context.Context, client *http.Client, paper *types.Paper, cfg types.ContentConfig, w io.Writer) (path string, skipped bool, err error) {
	id := paper.Metadata.ArxivID
	if id == "" {
		return "", false, fmt.Errorf("paper has no identifier")
	}
	if paper.Metadata.PDFURL == "" {
		return "", false, fmt.Errorf("paper %s has no PDF URL", id)
	}

	pdfPath := filepath.Join(cfg.PapersDir, id+".pdf")
	if _, statErr := os.Stat(pdfPath); statErr == nil {
		fmt.Fprintf(w, "skipped: %s (already downloaded)\n", id)
		return pdfPath, true, nil
	}

	if err := os.MkdirAll(cfg.PapersDir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating papers directory: %w", err)
	}

	fmt.Fprintf(w, "downloading: %s\n", id)

	if err := downloadFile(ctx, client, paper.Metadata.PDFURL, pdfPath, cfg); err != nil {
		return "", false, fmt.Errorf("downloading %s: %w", id, err)
	}

	if err := writeMetadata(paper, filepath.Join(cfg.PapersDir, id+".yaml")); err != nil {
		fmt.Fprintf(w, "  warning: writing metadata for %s: %v\n", id, err)
	}

	return pdfPath, false, nil
}

// downloadFile fetches url to destPath using a temporary file in the
// destination directory and an atomic rename.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string, cfg types.ContentConfig) error {
	req, err := httputil.NewRequest(ctx, url, cfg.UserAgent)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeMetadata writes the paper's metadata to a YAML sidecar file.
func writeMetadata(paper *types.Paper, path string) error {
	data, err := yaml.Marshal(paper.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadMetadata reads a metadata sidecar written by DownloadPDF.
func ReadMetadata(path string) (types.PaperMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PaperMetadata{}, err
	}
	var meta types.PaperMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return types.PaperMetadata{}, fmt.Errorf("parsing metadata %s: %w", path, err)
	}
	return meta, nil
}
