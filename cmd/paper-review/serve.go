// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-review/internal/report"
	"github.com/pdiddy/paper-review/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline over HTTP",
	Long: `Serve starts the HTTP API. POST /api/runs triggers a pipeline run in the
background; GET /api/runs, /api/runs/latest, and /api/runs/:id read stored
reports; GET /api/status reports the in-flight run.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Bool("process-content", false, "download PDFs and extract content during runs")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// .env is optional; environment variables already set win.
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded .env")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	processContent, _ := cmd.Flags().GetBool("process-content")

	pl, err := buildPipeline(cfg, processContent)
	if err != nil {
		return err
	}

	store, err := report.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	server := &web.Server{
		Pipeline: pl,
		Store:    store,
		Log:      os.Stderr,
	}

	fmt.Fprintf(os.Stderr, "listening on %s\n", cfg.Server.Addr)
	return server.Router().Run(cfg.Server.Addr)
}
