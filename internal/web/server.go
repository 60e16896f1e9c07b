// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the HTTP API. Runs execute in the background; the
// API reports their status and serves stored reports from the run
// store.
package web

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/paper-review/internal/pipeline"
	"github.com/pdiddy/paper-review/internal/report"
	"github.com/pdiddy/paper-review/pkg/types"
)

// RunRequest is the POST /api/runs payload. Empty fields fall back to
// the default criteria.
type RunRequest struct {
	Criteria       *types.FilterCriteria `json:"criteria"`
	ProcessContent bool                  `json:"process_content"`
}

// runState tracks the most recent background run.
type runState struct {
	RunID      string    `json:"run_id"`
	Running    bool      `json:"running"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Server exposes the pipeline over HTTP.
type Server struct {
	Pipeline *pipeline.Pipeline
	Store    *report.Store
	Log      io.Writer

	mu    sync.Mutex
	state runState
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.GET("/api/status", s.handleStatus)
	r.POST("/api/runs", s.handleStartRun)
	r.GET("/api/runs", s.handleListRuns)
	r.GET("/api/runs/latest", s.handleLatestRun)
	r.GET("/api/runs/:id", s.handleGetRun)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStatus(c *gin.Context) {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	c.JSON(http.StatusOK, state)
}

// handleStartRun kicks off a pipeline run in the background and returns
// its run ID immediately. Only one run may be in flight at a time.
func (s *Server) handleStartRun(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	criteria := types.DefaultCriteria()
	if req.Criteria != nil {
		criteria = *req.Criteria
	}
	if err := criteria.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runID := report.NewRunID()

	s.mu.Lock()
	if s.state.Running {
		inflight := s.state.RunID
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "run already in progress", "run_id": inflight})
		return
	}
	s.state = runState{RunID: runID, Running: true, StartedAt: time.Now().UTC()}
	s.mu.Unlock()

	go s.runInBackground(runID, criteria, req.ProcessContent)

	c.JSON(http.StatusAccepted, gin.H{"run_id": runID})
}

// runInBackground executes the pipeline and records the outcome. The
// request context is gone by the time this runs, so it uses its own.
func (s *Server) runInBackground(runID string, criteria types.FilterCriteria, processContent bool) {
	ctx := context.Background()
	log := s.Log
	if log == nil {
		log = io.Discard
	}

	result, err := s.Pipeline.Run(ctx, criteria, processContent, log)
	if err == nil {
		_, err = s.Store.Save(ctx, runID, result)
	}

	s.mu.Lock()
	s.state.Running = false
	s.state.FinishedAt = time.Now().UTC()
	if err != nil {
		s.state.Error = err.Error()
	}
	s.mu.Unlock()
}

func (s *Server) handleListRuns(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	runs, err := s.Store.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []report.RunSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleLatestRun(c *gin.Context) {
	run, err := s.Store.Latest(c.Request.Context())
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no runs recorded"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) handleGetRun(c *gin.Context) {
	run, err := s.Store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}
