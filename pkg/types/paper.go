// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paperfetch pipeline:
// requested papers, search candidates, match decisions, and per-stage
// configuration.
package types

import "time"

// RequestedPaper is an informally named paper to resolve: a title string as
// it appeared in some reading list or report, plus the URL it came from.
// Immutable once created.
type RequestedPaper struct {
	// Title is the paper title as given by the source (may contain
	// punctuation, subtitles, and venue-specific drift).
	Title string `json:"paper_name" yaml:"paper_name"`

	// SourceURL is where the title was found (arXiv, DOI, proceedings page).
	SourceURL string `json:"paper_url" yaml:"paper_url"`
}

// Candidate is a result returned by the repository search: the canonical
// title, the repository identifier, and the entry URL. Candidates are
// ephemeral; they are discarded unless a match decision accepts them.
type Candidate struct {
	// Title is the canonical title as recorded by the repository.
	Title string `json:"title" yaml:"title"`

	// ID is the repository identifier (e.g. arXiv ID "2310.17042").
	ID string `json:"id" yaml:"id"`

	// EntryURL is the repository abstract page for the record.
	EntryURL string `json:"entry_url" yaml:"entry_url"`
}

// ResolutionResult is the final outcome for one requested paper. A nil
// Match means the paper could not be resolved; Err then carries the reason.
type ResolutionResult struct {
	Paper RequestedPaper `json:"paper" yaml:"paper"`

	// Match is the accepted candidate, or nil if unresolved.
	Match *Candidate `json:"match,omitempty" yaml:"match,omitempty"`

	// Decision is the verifier verdict that accepted Match. It is nil when
	// the match came from a direct identifier in the source URL or from the
	// interactive fallback (explicit human override), and when unresolved.
	Decision *MatchDecision `json:"decision,omitempty" yaml:"decision,omitempty"`

	// StrategyIndex is the 1-based index of the search strategy that found
	// the match, or 0 when no strategy was involved.
	StrategyIndex int `json:"strategy_index,omitempty" yaml:"strategy_index,omitempty"`

	// Manual reports whether the match came from the interactive fallback.
	Manual bool `json:"manual,omitempty" yaml:"manual,omitempty"`

	// Downloaded reports whether the PDF was fetched successfully.
	Downloaded bool `json:"downloaded" yaml:"downloaded"`

	// DirectDownload reports whether the PDF came straight from the source
	// URL rather than from a resolved repository record.
	DirectDownload bool `json:"direct_download,omitempty" yaml:"direct_download,omitempty"`

	// PDFPath is the local path of the downloaded PDF, if any.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// Err is a human-readable failure reason when the paper is unresolved
	// or the download failed.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`

	// ResolvedAt is when the orchestrator finalized this result.
	ResolvedAt time.Time `json:"resolved_at,omitempty" yaml:"resolved_at,omitempty"`
}

// Resolved reports whether a repository match was found.
func (r ResolutionResult) Resolved() bool {
	return r.Match != nil
}
