// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/paper-review/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{ReportsDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(date string, n int) types.SummaryReport {
	report := types.SummaryReport{
		Date:        date,
		TotalPapers: n,
		ArxivCount:  n,
		Summaries:   []types.PaperSummary{},
	}
	for i := 0; i < n; i++ {
		report.Summaries = append(report.Summaries, types.PaperSummary{
			PaperID: fmt.Sprintf("2602.%05d", i),
			Metadata: types.PaperMetadata{
				ArxivID: fmt.Sprintf("2602.%05d", i),
				Title:   fmt.Sprintf("Paper %d", i),
				Source:  types.SourceArxiv,
			},
			Summary: "a summary",
		})
	}
	return report
}

func TestStoreSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, "run-1", sampleReport("2026-02-15", 2))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID != "run-1" || saved.CreatedAt.IsZero() {
		t.Errorf("saved = %+v", saved)
	}

	got, err := s.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Report.Date != "2026-02-15" || got.Report.TotalPapers != 2 {
		t.Errorf("report = %+v", got.Report)
	}
	if len(got.Report.Summaries) != 2 || got.Report.Summaries[0].PaperID != "2602.00000" {
		t.Errorf("summaries = %+v", got.Report.Summaries)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Get() error = %v, want sql.ErrNoRows", err)
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, "dup", sampleReport("2026-02-15", 1)); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if _, err := s.Save(ctx, "dup", sampleReport("2026-02-16", 1)); err == nil {
		t.Error("second Save() with same run ID = nil error, want unique violation")
	}
}

func TestStoreLatestAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Latest(ctx); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Latest() on empty store = %v, want sql.ErrNoRows", err)
	}

	for i, id := range []string{"r1", "r2", "r3"} {
		if _, err := s.Save(ctx, id, sampleReport(fmt.Sprintf("2026-02-1%d", i), i+1)); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}

	latest, err := s.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.ID != "r3" {
		t.Errorf("Latest() = %q, want r3", latest.ID)
	}

	runs, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "r3" || runs[1].ID != "r2" {
		t.Errorf("List() = %+v, want newest first capped at 2", runs)
	}
	if runs[0].TotalPapers != 3 {
		t.Errorf("TotalPapers = %d", runs[0].TotalPapers)
	}
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if len(a) != 16 {
		t.Errorf("len = %d, want 16 hex chars", len(a))
	}
	if a == b {
		t.Error("two generated run IDs collide")
	}
}
