// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

const (
	binPdftotext = "pdftotext"
	binPdfimages = "pdfimages"

	defaultMaxImages = 3
	defaultMinWidth  = 300
	defaultMinHeight = 300
)

// Extractor pulls plain text and figure images out of a PDF. The
// pipeline only depends on this contract; the poppler implementation
// below is one provider.
type Extractor interface {
	// ExtractText returns the full plain text of the PDF.
	ExtractText(ctx context.Context, pdfPath string) (string, error)

	// ExtractImages writes up to maxImages figures from the PDF into
	// destDir, named after id, and returns their paths in extraction
	// order. Images below the minimum dimensions are discarded.
	ExtractImages(ctx context.Context, pdfPath, destDir, id string, maxImages, minWidth, minHeight int) ([]string, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s: %s: %w", name, msg, err)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Poppler extracts text and images with the poppler-utils command line
// tools (pdftotext, pdfimages).
type Poppler struct {
	exec executor
}

// NewPoppler returns a Poppler extractor, verifying that both tools are
// on PATH.
func NewPoppler() (*Poppler, error) {
	e := &osExecutor{}
	for _, bin := range []string{binPdftotext, binPdfimages} {
		if _, err := e.LookPath(bin); err != nil {
			return nil, fmt.Errorf("%s not found on PATH (install poppler-utils): %w", bin, err)
		}
	}
	return &Poppler{exec: e}, nil
}

// ExtractText runs pdftotext with output to stdout.
func (p *Poppler) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	var out bytes.Buffer
	if err := p.exec.Run(ctx, binPdftotext, []string{pdfPath, "-"}, &out); err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", pdfPath, err)
	}
	return out.String(), nil
}

// ExtractImages runs pdfimages into a scratch directory, filters the
// results by minimum dimensions, and moves the keepers into destDir as
// "<id>_img_N.png". Undecodable files are skipped, not fatal.
func (p *Poppler) ExtractImages(ctx context.Context, pdfPath, destDir, id string, maxImages, minWidth, minHeight int) ([]string, error) {
	if maxImages <= 0 {
		maxImages = defaultMaxImages
	}
	if minWidth <= 0 {
		minWidth = defaultMinWidth
	}
	if minHeight <= 0 {
		minHeight = defaultMinHeight
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating images directory: %w", err)
	}

	scratch, err := os.MkdirTemp("", "paper-images-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	prefix := filepath.Join(scratch, "img")
	if err := p.exec.Run(ctx, binPdfimages, []string{"-png", pdfPath, prefix}, io.Discard); err != nil {
		return nil, fmt.Errorf("extracting images from %s: %w", pdfPath, err)
	}

	entries, err := os.ReadDir(scratch)
	if err != nil {
		return nil, fmt.Errorf("reading scratch directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var kept []string
	for _, name := range names {
		if len(kept) >= maxImages {
			break
		}
		src := filepath.Join(scratch, name)
		w, h, err := imageSize(src)
		if err != nil || w < minWidth || h < minHeight {
			continue
		}
		dest := filepath.Join(destDir, fmt.Sprintf("%s_img_%d.png", id, len(kept)+1))
		if err := moveFile(src, dest); err != nil {
			return kept, fmt.Errorf("saving image %s: %w", dest, err)
		}
		kept = append(kept, dest)
	}
	return kept, nil
}

// imageSize decodes just the image header to get its dimensions.
func imageSize(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// moveFile renames src to dest, falling back to copy+remove when the
// paths are on different filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
