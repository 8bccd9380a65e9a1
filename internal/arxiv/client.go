// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv queries the arXiv export API: phrase and free-text searches
// over the Atom feed, plus fetch-by-identifier. It is the repository-search
// collaborator of the resolution pipeline.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/paperfetch/internal/httputil"
	"github.com/pdiddy/paperfetch/internal/strategy"
	"github.com/pdiddy/paperfetch/pkg/types"
)

// apiBase is the arXiv search endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

// pdfBase is the arXiv PDF endpoint.
var pdfBase = "https://arxiv.org/pdf/"

// Client queries the arXiv API.
type Client struct {
	HTTP       *http.Client
	UserAgent  string
	MaxRetries int
}

// Search runs one query spec against the arXiv API and returns the
// candidates in feed order (relevance-sorted, descending).
func (c *Client) Search(ctx context.Context, spec strategy.QuerySpec) ([]types.Candidate, error) {
	terms := strings.TrimSpace(spec.Terms)
	if terms == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}

	field := "all"
	if spec.TitleField {
		field = "ti"
	}
	q := field + ":" + terms
	if spec.Phrase {
		q = fmt.Sprintf("%s:%q", field, terms)
	}

	maxResults := spec.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{
		"search_query": {q},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(maxResults)},
		"sortBy":       {"relevance"},
		"sortOrder":    {"descending"},
	}
	return c.query(ctx, params)
}

// FetchByID retrieves the single record for an arXiv ID. A nil candidate
// with nil error means the repository has no entry for the ID.
func (c *Client) FetchByID(ctx context.Context, id string) (*types.Candidate, error) {
	params := url.Values{"id_list": {id}}
	candidates, err := c.query(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return &candidates[0], nil
}

func (c *Client) query(ctx context.Context, params url.Values) ([]types.Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var candidates []types.Candidate
	for _, entry := range feed.Entries {
		id := idFromEntryURL(entry.ID)
		if id == "" || entry.Title == "" {
			// Malformed entry; skip and keep the rest.
			continue
		}
		candidates = append(candidates, types.Candidate{
			Title:    collapseSpace(entry.Title),
			ID:       id,
			EntryURL: strings.TrimSpace(entry.ID),
		})
	}
	return candidates, nil
}

// PDFURL returns the download URL for an arXiv ID.
func PDFURL(id string) string {
	return pdfBase + id
}

// PDFURL returns the download URL for an arXiv ID.
func (c *Client) PDFURL(id string) string { return PDFURL(id) }

// IDFromURL extracts an arXiv ID from a source URL, or returns "".
func (c *Client) IDFromURL(sourceURL string) string { return ExtractID(sourceURL) }

// sourceURLPatterns match arXiv IDs embedded in source URLs:
// "arxiv.org/abs/2310.17042", "arxiv.org/pdf/2310.17042v2", "/arxiv:2310.17042".
var sourceURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`arxiv\.org/(?:abs|pdf)/(\d{4}\.\d{4,5}(?:v\d+)?)`),
	regexp.MustCompile(`/arxiv:(\d{4}\.\d{4,5}(?:v\d+)?)`),
}

// ExtractID pulls an arXiv ID out of a source URL, or returns "" when the
// URL does not encode one. Version suffixes are stripped.
func ExtractID(sourceURL string) string {
	for _, pat := range sourceURLPatterns {
		if m := pat.FindStringSubmatch(sourceURL); m != nil {
			return stripVersion(m[1])
		}
	}
	return ""
}

// idFromEntryURL pulls the arXiv ID from an Atom entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func idFromEntryURL(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return stripVersion(strings.TrimSpace(idURL[idx+len(prefix):]))
}

// stripVersion removes a trailing "vN" revision suffix.
func stripVersion(id string) string {
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			return id[:vIdx]
		}
	}
	return id
}

// collapseSpace trims an Atom title and flattens its line-wrap whitespace.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID    string `xml:"id"`
	Title string `xml:"title"`
}
