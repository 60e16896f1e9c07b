// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/pdiddy/paper-review/pkg/types"
)

const defaultConcurrency = 3

// Processor attaches downloaded and extracted artifacts to papers.
type Processor struct {
	Client    *http.Client
	Extractor Extractor
	Config    types.ContentConfig
}

// Process downloads the paper's PDF and extracts its text and figures,
// attaching each artifact in place. A failure at any step is logged and
// the paper is returned with whatever it has so far; it stays eligible
// for summarization with degraded context.
func (pr *Processor) Process(ctx context.Context, paper *types.Paper, w io.Writer) {
	id := paper.Metadata.ArxivID
	if id == "" {
		fmt.Fprintf(w, "warning: paper %q has no identifier, skipping content\n", paper.Metadata.ID())
		return
	}

	pdfPath, _, err := DownloadPDF(ctx, pr.Client, paper, pr.Config, w)
	if err != nil {
		fmt.Fprintf(w, "warning: %s: %v\n", id, err)
		return
	}
	paper.PDFPath = pdfPath

	text, err := pr.Extractor.ExtractText(ctx, pdfPath)
	if err != nil {
		fmt.Fprintf(w, "warning: %s: %v\n", id, err)
	} else {
		paper.FullText = text
	}

	images, err := pr.Extractor.ExtractImages(ctx, pdfPath, pr.Config.ImagesDir, id,
		pr.Config.MaxImages, pr.Config.MinImageWidth, pr.Config.MinImageHeight)
	if err != nil {
		fmt.Fprintf(w, "warning: %s: %v\n", id, err)
	}
	// Keep any images extracted before the failure.
	paper.ImagePaths = images
}

// ProcessAll processes papers with bounded concurrency. Papers are
// independent units of work: one failure or slow download never affects
// a sibling, and each goroutine only touches its own paper.
func (pr *Processor) ProcessAll(ctx context.Context, papers []*types.Paper, w io.Writer) {
	concurrency := pr.Config.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	log := &syncWriter{w: w}

	for _, p := range papers {
		wg.Add(1)
		go func(p *types.Paper) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			pr.Process(ctx, p, log)
		}(p)
	}
	wg.Wait()
}

// syncWriter serializes status lines written from worker goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
