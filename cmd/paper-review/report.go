// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-review/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Read stored run reports",
}

var reportShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show a stored report (latest when no run ID is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReportShow,
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	RunE:  runReportList,
}

func init() {
	reportShowCmd.Flags().Bool("json", false, "print the report as JSON instead of Markdown")
	reportListCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportListCmd)
	rootCmd.AddCommand(reportCmd)
}

func openStore() (*report.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return report.NewStore(cfg.Store)
}

func runReportShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var run report.Run
	if len(args) == 1 {
		run, err = store.Get(cmd.Context(), args[0])
	} else {
		run, err = store.Latest(cmd.Context())
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no matching run found")
	}
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return report.FormatJSON(run.Report, os.Stdout)
	}
	report.FormatMarkdown(run.Report, os.Stdout)
	return nil
}

func runReportList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-18s  %-20s  %-12s  %-6s  %-6s  %s\n",
		"Run", "Created", "Report date", "Total", "arXiv", "HF")
	for _, r := range runs {
		fmt.Printf("%-18s  %-20s  %-12s  %-6d  %-6d  %d\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.ReportDate,
			r.TotalPapers, r.ArxivCount, r.HuggingFaceCount)
	}
	return nil
}
