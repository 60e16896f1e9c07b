// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report persists run reports in SQLite and renders them for
// humans. A run is identified by a generated run ID; "latest" semantics
// belong here, not in the pipeline, so the core stays free of shared
// mutable state.
package report

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-review/pkg/types"
)

const dbFile = "runs.db"

// Run is one stored pipeline run.
type Run struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Report    types.SummaryReport `json:"report"`
}

// Store manages the run database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the run database at reportsDir/runs.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.ReportsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating reports directory: %w", err)
	}

	dbPath := filepath.Join(cfg.ReportsDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			report_date TEXT NOT NULL,
			total_papers INTEGER NOT NULL,
			arxiv_count INTEGER NOT NULL,
			huggingface_count INTEGER NOT NULL,
			report_json TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// NewRunID generates a random run identifier.
func NewRunID() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Save stores a report under the given run ID and returns the stored run.
func (s *Store) Save(ctx context.Context, runID string, report types.SummaryReport) (Run, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return Run{}, fmt.Errorf("marshaling report: %w", err)
	}

	createdAt := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, report_date, total_papers, arxiv_count, huggingface_count, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, createdAt.Format(time.RFC3339Nano), report.Date,
		report.TotalPapers, report.ArxivCount, report.HuggingFaceCount, string(payload))
	if err != nil {
		return Run{}, fmt.Errorf("inserting run %s: %w", runID, err)
	}

	return Run{ID: runID, CreatedAt: createdAt, Report: report}, nil
}

// Get returns the run with the given ID. sql.ErrNoRows is returned
// unwrapped when the run does not exist.
func (s *Store) Get(ctx context.Context, runID string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, report_json FROM runs WHERE id = ?`, runID)
	return scanRun(row)
}

// Latest returns the most recently stored run. sql.ErrNoRows is
// returned unwrapped when the store is empty.
func (s *Store) Latest(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, report_json FROM runs ORDER BY rowid DESC LIMIT 1`)
	return scanRun(row)
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	ReportDate       string    `json:"report_date"`
	TotalPapers      int       `json:"total_papers"`
	ArxivCount       int       `json:"arxiv_count"`
	HuggingFaceCount int       `json:"huggingface_count"`
}

// List returns stored runs, newest first, capped at limit.
func (s *Store) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, report_date, total_papers, arxiv_count, huggingface_count
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.ReportDate, &r.TotalPapers, &r.ArxivCount, &r.HuggingFaceCount); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func scanRun(row *sql.Row) (Run, error) {
	var run Run
	var createdAt, payload string
	if err := row.Scan(&run.ID, &createdAt, &payload); err != nil {
		return Run{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		run.CreatedAt = t
	}
	if err := json.Unmarshal([]byte(payload), &run.Report); err != nil {
		return Run{}, fmt.Errorf("parsing stored report for %s: %w", run.ID, err)
	}
	return run, nil
}
