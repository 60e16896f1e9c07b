// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-review/internal/fetch"
	"github.com/pdiddy/paper-review/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and filter papers without ranking or summarizing",
	Long: `Fetch queries the enabled sources, applies the date and tag filters, and
prints the matching papers. No LLM calls are made; this is the quick way to
inspect what a full run would operate on.`,
	RunE: runFetch,
}

func init() {
	addCriteriaFlags(fetchCmd)
	fetchCmd.Flags().Bool("json", false, "print papers as JSON instead of a table")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := criteria.Validate(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	papers := fetch.All(cmd.Context(), buildSources(cfg), criteria, os.Stderr)

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	printPapers(papers)
	return nil
}

func printPapers(papers []*types.Paper) {
	if len(papers) == 0 {
		fmt.Println("No papers found.")
		return
	}

	fmt.Printf("%-16s  %-60s  %-12s  %-10s  %s\n",
		"ID", "Title", "Source", "Published", "Tags")
	fmt.Println(strings.Repeat("-", 120))

	for _, p := range papers {
		title := p.Metadata.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		published := ""
		if !p.Metadata.Published.IsZero() {
			published = p.Metadata.Published.Format("2006-01-02")
		}
		tags := strings.Join(p.Metadata.Tags, ",")
		if len(tags) > 30 {
			tags = tags[:27] + "..."
		}
		fmt.Printf("%-16s  %-60s  %-12s  %-10s  %s\n",
			p.Metadata.ID(), title, p.Metadata.Source, published, tags)
	}

	fmt.Printf("\n%d papers\n", len(papers))
}
