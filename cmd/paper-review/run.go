// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-review/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the full review pipeline and store the report",
	Long: `Run fetches papers from the enabled sources, ranks the arXiv candidates by
LLM-scored novelty, optionally downloads PDFs and extracts their content,
summarizes the selected papers, and stores the resulting report in the run
database. The report is also exported as Markdown and YAML files.`,
	RunE: runRun,
}

func init() {
	addCriteriaFlags(runCmd)
	runCmd.Flags().Int("top-n", 0, "how many ranked papers to keep (default 10)")
	runCmd.Flags().Float64("min-score", 0, "minimum total novelty score to keep a ranked paper")
	runCmd.Flags().Bool("no-rank", false, "skip novelty ranking")
	runCmd.Flags().Bool("process-content", false, "download PDFs and extract text and figures")
	runCmd.Flags().Bool("json", false, "print the report as JSON instead of a table")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}
	if topN, _ := cmd.Flags().GetInt("top-n"); topN > 0 {
		criteria.TopN = topN
	}
	if minScore, _ := cmd.Flags().GetFloat64("min-score"); minScore > 0 {
		criteria.MinScore = minScore
	}
	if noRank, _ := cmd.Flags().GetBool("no-rank"); noRank {
		criteria.RankingEnabled = false
	}
	processContent, _ := cmd.Flags().GetBool("process-content")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pl, err := buildPipeline(cfg, processContent)
	if err != nil {
		return err
	}

	result, err := pl.Run(cmd.Context(), criteria, processContent, os.Stderr)
	if err != nil {
		return err
	}

	store, err := report.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Save(cmd.Context(), report.NewRunID(), result)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "stored run %s\n", run.ID)

	if path, err := report.ExportMarkdown(result, cfg.Store.ReportsDir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: exporting markdown: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	}
	if path, err := report.ExportYAML(result, cfg.Store.ReportsDir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: exporting yaml: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return report.FormatJSON(result, os.Stdout)
	}
	report.FormatTable(result, os.Stdout)
	return nil
}
