// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results records resolution outcomes twice over: a JSON report
// next to the paper list for retry runs and other tooling, and a SQLite log
// accumulating history across runs.
package results

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/paperfetch/pkg/types"
)

// Record is one paper's outcome in the JSON report.
type Record struct {
	PaperName      string   `json:"paper_name"`
	PaperURL       string   `json:"paper_url,omitempty"`
	ArxivID        string   `json:"arxiv_id,omitempty"`
	ArxivURL       string   `json:"arxiv_url,omitempty"`
	ArxivTitle     string   `json:"arxiv_title,omitempty"`
	Similarity     *float64 `json:"similarity,omitempty"`
	MatchReason    string   `json:"match_reason,omitempty"`
	PDFPath        string   `json:"pdf_path,omitempty"`
	Downloaded     bool     `json:"downloaded"`
	ManualSearch   bool     `json:"manual_search,omitempty"`
	DirectDownload bool     `json:"direct_download,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Report is the on-disk download report.
type Report struct {
	Papers []Record `json:"papers"`
}

// FromResults converts resolution results into report records.
func FromResults(results []types.ResolutionResult) Report {
	var rep Report
	for _, res := range results {
		rec := Record{
			PaperName:      res.Paper.Title,
			PaperURL:       res.Paper.SourceURL,
			PDFPath:        res.PDFPath,
			Downloaded:     res.Downloaded,
			ManualSearch:   res.Manual,
			DirectDownload: res.DirectDownload,
			Error:          res.Err,
		}
		if res.Match != nil {
			rec.ArxivID = res.Match.ID
			rec.ArxivURL = res.Match.EntryURL
			rec.ArxivTitle = res.Match.Title
		}
		if res.Decision != nil {
			sim := res.Decision.Similarity
			rec.Similarity = &sim
			rec.MatchReason = string(res.Decision.Reason)
		}
		rep.Papers = append(rep.Papers, rec)
	}
	return rep
}

// Failed returns the papers whose latest attempt did not produce a PDF,
// ready to feed back into a retry run.
func (r Report) Failed() []types.RequestedPaper {
	var out []types.RequestedPaper
	for _, rec := range r.Papers {
		if rec.Downloaded {
			continue
		}
		out = append(out, types.RequestedPaper{Title: rec.PaperName, SourceURL: rec.PaperURL})
	}
	return out
}

// WriteReport saves the report to path.
func WriteReport(path string, rep Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ReadReport loads a previously written report.
func ReadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading report: %w", err)
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return Report{}, fmt.Errorf("parsing report: %w", err)
	}
	return rep, nil
}
