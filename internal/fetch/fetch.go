// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch collects paper metadata from the external feeds and
// normalizes it into the shared Paper record. Each feed implements the
// Source interface; the pipeline treats them uniformly.
package fetch

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/paper-review/pkg/types"
)

// Source adapts one external feed. Fetch returns the papers matching
// the criteria, already filtered. Implementations never let one
// malformed entry abort the batch.
type Source interface {
	Name() types.Source
	Fetch(ctx context.Context, criteria types.FilterCriteria, w io.Writer) ([]*types.Paper, error)
}

// All fetches from every enabled source concurrently and concatenates
// the results. A failing source is logged and contributes an empty
// slice; it never blocks the others. Result order groups papers by
// source in the order the sources were passed.
func All(ctx context.Context, sources []Source, criteria types.FilterCriteria, w io.Writer) []*types.Paper {
	type sourceResult struct {
		papers []*types.Paper
		err    error
		name   types.Source
	}

	results := make([]sourceResult, len(sources))
	var wg sync.WaitGroup
	log := &syncWriter{w: w}

	for i, s := range sources {
		if !criteria.HasSource(s.Name()) {
			continue
		}
		wg.Add(1)
		go func(i int, s Source) {
			defer wg.Done()
			papers, err := s.Fetch(ctx, criteria, log)
			results[i] = sourceResult{papers: papers, err: err, name: s.Name()}
		}(i, s)
	}
	wg.Wait()

	var all []*types.Paper
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(w, "warning: source %s failed: %v\n", r.name, r.err)
			continue
		}
		all = append(all, r.papers...)
	}
	return all
}

// syncWriter serializes warning lines written from source goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Partition splits papers by source tag, preserving relative order.
func Partition(papers []*types.Paper, s types.Source) (matching, rest []*types.Paper) {
	for _, p := range papers {
		if p.Metadata.Source == s {
			matching = append(matching, p)
		} else {
			rest = append(rest, p)
		}
	}
	return matching, rest
}
