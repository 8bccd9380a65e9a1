// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papers reads and writes the paper-list file, the JSON handoff
// between discovery and fetching. The file can also be written by hand.
package papers

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pdiddy/paperfetch/pkg/types"
)

// File is the on-disk paper list: the papers to fetch plus provenance
// metadata when discovery produced the list.
type File struct {
	Papers   []types.RequestedPaper `json:"papers"`
	Metadata *Metadata              `json:"metadata,omitempty"`

	// Skipped counts malformed entries dropped during Read.
	Skipped int `json:"-"`
}

// Metadata records where a discovered paper list came from.
type Metadata struct {
	Query     string    `json:"query,omitempty"`
	Model     string    `json:"model,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Read loads a paper list from path. A file without a papers key is an
// error; entries without a title are dropped and counted in Skipped.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading papers file: %w", err)
	}

	// The papers key must be present, even if empty: its absence means
	// the file is some other JSON document.
	var raw struct {
		Papers   *[]types.RequestedPaper `json:"papers"`
		Metadata *Metadata               `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing papers file: %w", err)
	}
	if raw.Papers == nil {
		return nil, fmt.Errorf("papers file %s has no papers key", path)
	}

	f := &File{Metadata: raw.Metadata}
	for _, p := range *raw.Papers {
		if p.Title == "" {
			f.Skipped++
			continue
		}
		f.Papers = append(f.Papers, p)
	}
	return f, nil
}

// Write saves the paper list to path.
func Write(path string, f *File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling papers file: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing papers file: %w", err)
	}
	return nil
}
