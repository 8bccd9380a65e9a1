// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package display

import (
	"bytes"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperfetch/internal/papers"
	"github.com/pdiddy/paperfetch/pkg/types"
)

func sampleFile() *papers.File {
	return &papers.File{
		Papers: []types.RequestedPaper{
			{Title: "ADOPT: Modified Adam", SourceURL: "https://arxiv.org/abs/2411.02853"},
			{Title: "Adam: A Method for Stochastic Optimization", SourceURL: "https://arxiv.org/abs/1412.6980"},
		},
		Metadata: &papers.Metadata{Query: "adam optimizer variants"},
	}
}

func TestPapersTable(t *testing.T) {
	out := PapersTable(sampleFile())

	for _, want := range []string{
		"Research papers on adam optimizer variants",
		"ADOPT: Modified Adam",
		"https://arxiv.org/abs/1412.6980",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestResultsTableStatus(t *testing.T) {
	results := []types.ResolutionResult{
		{
			Paper:    types.RequestedPaper{Title: "Paper A"},
			Match:    &types.Candidate{ID: "1111.11111", Title: "Paper A"},
			Decision: &types.MatchDecision{Accepted: true, Similarity: 0.93, Reason: types.ReasonHighSimilarity},
			Downloaded: true,
		},
		{
			Paper:          types.RequestedPaper{Title: "Paper B"},
			Downloaded:     true,
			DirectDownload: true,
		},
		{
			Paper: types.RequestedPaper{Title: "Paper C"},
			Err:   "no repository match found",
		},
	}
	out := ResultsTable(results)

	for _, want := range []string{
		"1111.11111",
		"0.93",
		"downloaded (direct)",
		"failed: no repository match found",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWritePlain(t *testing.T) {
	var buf bytes.Buffer
	WritePlain(&buf, sampleFile())
	out := buf.String()

	for _, want := range []string{
		"RESEARCH PAPERS ON ADAM OPTIMIZER VARIANTS",
		"1. ADOPT: Modified Adam",
		"   URL: https://arxiv.org/abs/2411.02853",
		"Total papers: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWritePlainNoMetadata(t *testing.T) {
	var buf bytes.Buffer
	WritePlain(&buf, &papers.File{})
	if !strings.Contains(buf.String(), "RESEARCH PAPERS") {
		t.Errorf("missing default banner:\n%s", buf.String())
	}
}

func TestFormatCSL(t *testing.T) {
	results := []types.ResolutionResult{
		{
			Paper: types.RequestedPaper{Title: "Requested Title"},
			Match: &types.Candidate{ID: "1111.11111", Title: "Canonical Title", EntryURL: "https://arxiv.org/abs/1111.11111"},
		},
		{
			Paper: types.RequestedPaper{Title: "Unresolved Paper"},
			Err:   "no repository match found",
		},
	}

	var buf bytes.Buffer
	if err := FormatCSL(results, &buf); err != nil {
		t.Fatalf("FormatCSL: %v", err)
	}

	var items []CSLItem
	if err := yaml.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("parsing CSL output: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1 (unresolved papers omitted)", len(items))
	}
	if items[0].ID != "1111.11111" || items[0].Title != "Canonical Title" || items[0].Type != "article" {
		t.Errorf("item = %+v", items[0])
	}
	if items[0].URL != "https://arxiv.org/abs/1111.11111" {
		t.Errorf("URL = %q", items[0].URL)
	}
}
