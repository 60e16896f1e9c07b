// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/paper-review/internal/httputil"
	"github.com/pdiddy/paper-review/pkg/types"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// Arxiv queries the arXiv API for recent papers in the criteria's
// categories and applies the date and category filters locally.
type Arxiv struct {
	Client *http.Client
	Config types.FetchConfig

	// Now supplies the current time for date-window resolution. Nil
	// means time.Now.
	Now func() time.Time
}

// Name returns the source tag.
func (a *Arxiv) Name() types.Source { return types.SourceArxiv }

// Fetch queries arXiv for papers in the criteria's categories, sorted
// by submission date, converts each Atom entry into a Paper, and keeps
// the ones inside the date window that pass the category predicate.
// Entries that fail conversion are logged and skipped; they never abort
// the batch.
func (a *Arxiv) Fetch(ctx context.Context, criteria types.FilterCriteria, w io.Writer) ([]*types.Paper, error) {
	cats := criteria.Categories
	if len(cats) == 0 {
		cats = a.Config.DefaultCategories
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("no arXiv categories to query")
	}

	maxResults := a.Config.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}

	query := buildCategoryQuery(cats)
	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, url.QueryEscape(query), maxResults)

	req, err := httputil.NewRequest(ctx, reqURL, a.Config.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	from, to := criteria.DateWindow(now())

	var papers []*types.Paper
	for _, entry := range feed.Entries {
		meta, err := convertArxivEntry(entry)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping arXiv entry: %v\n", err)
			continue
		}
		if !inWindow(meta.Published, from, to) {
			continue
		}
		if !matchTags(meta.Categories, criteria.Categories, criteria.CategoryMode) {
			continue
		}
		papers = append(papers, &types.Paper{Metadata: meta})
	}
	return papers, nil
}

// buildCategoryQuery OR-joins cat: terms for the search_query parameter.
func buildCategoryQuery(cats []string) string {
	terms := make([]string, len(cats))
	for i, c := range cats {
		terms[i] = "cat:" + c
	}
	return strings.Join(terms, " OR ")
}

// convertArxivEntry normalizes one Atom entry into PaperMetadata. An
// entry without an identifier or a parsable publication date is
// malformed.
func convertArxivEntry(entry arxivEntry) (types.PaperMetadata, error) {
	arxivID := extractArxivID(entry.ID)
	if arxivID == "" {
		return types.PaperMetadata{}, fmt.Errorf("entry %q has no arXiv ID", entry.ID)
	}

	published, err := time.Parse(time.RFC3339, entry.Published)
	if err != nil {
		return types.PaperMetadata{}, fmt.Errorf("entry %s: bad published date %q", arxivID, entry.Published)
	}

	meta := types.PaperMetadata{
		Title:           strings.Join(strings.Fields(entry.Title), " "),
		Abstract:        strings.TrimSpace(entry.Summary),
		Published:       published,
		ArxivID:         arxivID,
		PrimaryCategory: entry.PrimaryCategory.Term,
		DOI:             entry.DOI,
		JournalRef:      entry.JournalRef,
		Comment:         strings.TrimSpace(entry.Comment),
		Source:          types.SourceArxiv,
	}

	if t, parseErr := time.Parse(time.RFC3339, entry.Updated); parseErr == nil {
		meta.Updated = t
	}
	for _, a := range entry.Authors {
		meta.Authors = append(meta.Authors, strings.TrimSpace(a.Name))
	}
	for _, c := range entry.Categories {
		meta.Categories = append(meta.Categories, c.Term)
	}
	if meta.PrimaryCategory == "" && len(meta.Categories) > 0 {
		meta.PrimaryCategory = meta.Categories[0]
	}

	// For arXiv papers the tag vocabulary is the category set.
	meta.Tags = meta.Categories

	for _, l := range entry.Links {
		if l.Title == "pdf" {
			meta.PDFURL = l.Href
		}
	}
	if meta.PDFURL == "" {
		meta.PDFURL = "https://arxiv.org/pdf/" + arxivID
	}

	return meta, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID              string          `xml:"id"`
	Title           string          `xml:"title"`
	Summary         string          `xml:"summary"`
	Published       string          `xml:"published"`
	Updated         string          `xml:"updated"`
	Authors         []arxivAuthor   `xml:"author"`
	Categories      []arxivCategory `xml:"category"`
	PrimaryCategory arxivCategory   `xml:"primary_category"`
	DOI             string          `xml:"doi"`
	JournalRef      string          `xml:"journal_ref"`
	Comment         string          `xml:"comment"`
	Links           []arxivLink     `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if isDigits(id[vIdx+1:]) {
			id = id[:vIdx]
		}
	}
	return id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
