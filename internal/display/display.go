// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display renders paper lists and resolution results for the
// terminal, and exports bibliographies as CSL-YAML for Pandoc and reference
// managers.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperfetch/internal/papers"
	"github.com/pdiddy/paperfetch/pkg/types"
)

// PapersTable renders a paper list as a terminal table.
func PapersTable(f *papers.File) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if f.Metadata != nil && f.Metadata.Query != "" {
		tw.SetTitle("Research papers on " + f.Metadata.Query)
	}
	tw.AppendHeader(table.Row{"#", "Title", "URL"})
	for i, p := range f.Papers {
		tw.AppendRow(table.Row{i + 1, p.Title, p.SourceURL})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, WidthMax: 70},
	})
	return tw.Render()
}

// ResultsTable renders resolution results as a terminal table.
func ResultsTable(results []types.ResolutionResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Paper", "arXiv ID", "Similarity", "Status"})
	for _, res := range results {
		var id, sim string
		if res.Match != nil {
			id = res.Match.ID
		}
		if res.Decision != nil {
			sim = fmt.Sprintf("%.2f", res.Decision.Similarity)
		}
		tw.AppendRow(table.Row{res.Paper.Title, id, sim, status(res)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: 60},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// status summarizes one result in a word or two.
func status(res types.ResolutionResult) string {
	switch {
	case res.Downloaded && res.DirectDownload:
		return "downloaded (direct)"
	case res.Downloaded && res.Manual:
		return "downloaded (manual)"
	case res.Downloaded:
		return "downloaded"
	case res.Resolved():
		return "resolved"
	case res.Err != "":
		return "failed: " + res.Err
	default:
		return "unresolved"
	}
}

// WritePlain writes the paper list in the banner-and-list format, for
// redirecting to a file or a pipe where box drawing is unwelcome.
func WritePlain(w io.Writer, f *papers.File) {
	title := "RESEARCH PAPERS"
	if f.Metadata != nil && f.Metadata.Query != "" {
		title = "RESEARCH PAPERS ON " + strings.ToUpper(f.Metadata.Query)
	}
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "%s\n%s\n%s\n\n", rule, center(title, 80), rule)
	for i, p := range f.Papers {
		fmt.Fprintf(w, "%d. %s\n   URL: %s\n\n", i+1, p.Title, p.SourceURL)
	}
	fmt.Fprintf(w, "Total papers: %d\n", len(f.Papers))
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}

// CSLItem is a bibliographic entry in CSL (Citation Style Language)
// format, consumable by Pandoc and reference managers.
type CSLItem struct {
	ID    string `yaml:"id"`
	Type  string `yaml:"type"`
	Title string `yaml:"title"`
	URL   string `yaml:"URL,omitempty"`
}

// FormatCSL writes the resolved papers as a CSL-YAML list to w. Unresolved
// papers are omitted: an entry without an identifier is useless to a
// reference manager.
func FormatCSL(results []types.ResolutionResult, w io.Writer) error {
	var items []CSLItem
	for _, res := range results {
		if res.Match == nil {
			continue
		}
		title := res.Match.Title
		if title == "" {
			title = res.Paper.Title
		}
		items = append(items, CSLItem{
			ID:    res.Match.ID,
			Type:  "article",
			Title: title,
			URL:   res.Match.EntryURL,
		})
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}
