// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/paper-review/internal/httputil"
	"github.com/pdiddy/paper-review/pkg/types"
)

// hfAPIBase is the Hugging Face daily-papers endpoint. Declared as a
// var so tests can substitute an httptest server.
var hfAPIBase = "https://huggingface.co/api/daily_papers"

// HuggingFace fetches the daily-papers listing. This is a best-effort
// source: a whole-batch failure is reported to the log and yields an
// empty result rather than an error, so the other source keeps going.
type HuggingFace struct {
	Client *http.Client
	Config types.FetchConfig

	// Now supplies the current time for date-window resolution. Nil
	// means time.Now.
	Now func() time.Time
}

// Name returns the source tag.
func (h *HuggingFace) Name() types.Source { return types.SourceHuggingFace }

// hfEntry is one element of the daily-papers response.
type hfEntry struct {
	Paper       hfPaper `json:"paper"`
	NumComments int     `json:"numComments"`
	Thumbnail   string  `json:"thumbnail"`
}

type hfPaper struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	PublishedAt string     `json:"publishedAt"`
	Authors     []hfAuthor `json:"authors"`
	AIKeywords  []string   `json:"ai_keywords"`
	Upvotes     int        `json:"upvotes"`
	GitHubRepo  string     `json:"githubRepo"`
	GitHubStars int        `json:"githubStars"`
	ProjectPage string     `json:"projectPage"`
}

type hfAuthor struct {
	Name string `json:"name"`
}

// Fetch retrieves one page of the listing, bounded by the criteria's
// MaxListed, and applies the date window, upvote floor, and keyword
// predicate. Malformed entries are logged and skipped. Network or parse
// failure for the whole batch returns an empty, non-error result.
func (h *HuggingFace) Fetch(ctx context.Context, criteria types.FilterCriteria, w io.Writer) ([]*types.Paper, error) {
	limit := criteria.MaxListed
	if limit <= 0 {
		limit = 50
	}

	entries, err := h.fetchPage(ctx, limit)
	if err != nil {
		fmt.Fprintf(w, "warning: Hugging Face fetch failed: %v\n", err)
		return nil, nil
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	from, to := criteria.DateWindow(now())

	var papers []*types.Paper
	for _, entry := range entries {
		meta, err := convertHFEntry(entry)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping Hugging Face entry: %v\n", err)
			continue
		}
		if !inWindow(meta.Published, from, to) {
			continue
		}
		if criteria.MinUpvotes > 0 && meta.Upvotes < criteria.MinUpvotes {
			continue
		}
		if !matchTags(meta.Tags, criteria.Keywords, criteria.KeywordMode) {
			continue
		}
		papers = append(papers, &types.Paper{Metadata: meta})
		if len(papers) >= limit {
			break
		}
	}
	return papers, nil
}

// fetchPage performs the single listing GET.
func (h *HuggingFace) fetchPage(ctx context.Context, limit int) ([]hfEntry, error) {
	reqURL := fmt.Sprintf("%s?limit=%d", hfAPIBase, limit)

	req, err := httputil.NewRequest(ctx, reqURL, h.Config.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, h.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("daily papers request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("daily papers API returned HTTP %d", resp.StatusCode)
	}

	var entries []hfEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing daily papers response: %w", err)
	}
	return entries, nil
}

// convertHFEntry normalizes one listing entry into PaperMetadata. The
// tag vocabulary for this source is the entry's AI keyword list.
func convertHFEntry(entry hfEntry) (types.PaperMetadata, error) {
	published, err := time.Parse(time.RFC3339, entry.Paper.PublishedAt)
	if err != nil {
		return types.PaperMetadata{}, fmt.Errorf("entry %q: bad publishedAt %q", entry.Paper.ID, entry.Paper.PublishedAt)
	}

	meta := types.PaperMetadata{
		Title:       entry.Paper.Title,
		Abstract:    entry.Paper.Summary,
		Published:   published,
		ArxivID:     entry.Paper.ID,
		Categories:  entry.Paper.AIKeywords,
		Source:      types.SourceHuggingFace,
		Tags:        entry.Paper.AIKeywords,
		Upvotes:     entry.Paper.Upvotes,
		NumComments: entry.NumComments,
		GitHubRepo:  entry.Paper.GitHubRepo,
		GitHubStars: entry.Paper.GitHubStars,
		ProjectPage: entry.Paper.ProjectPage,
		Thumbnail:   entry.Thumbnail,
	}
	if len(entry.Paper.AIKeywords) > 0 {
		meta.PrimaryCategory = entry.Paper.AIKeywords[0]
	} else {
		meta.PrimaryCategory = "unknown"
	}
	for _, a := range entry.Paper.Authors {
		meta.Authors = append(meta.Authors, a.Name)
	}
	return meta, nil
}
