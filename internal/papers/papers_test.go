// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/paperfetch/pkg/types"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "papers.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadPapers(t *testing.T) {
	path := writeTemp(t, `{
  "papers": [
    {"paper_name": "ADOPT: Modified Adam", "paper_url": "https://arxiv.org/abs/2411.02853"},
    {"paper_name": "Adam: A Method for Stochastic Optimization", "paper_url": "https://arxiv.org/abs/1412.6980"}
  ],
  "metadata": {"query": "adam optimizer variants", "model": "gpt-4o", "timestamp": "2026-08-01T12:00:00Z"}
}`)

	f, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(f.Papers) != 2 {
		t.Fatalf("len(Papers) = %d, want 2", len(f.Papers))
	}
	if f.Papers[0].Title != "ADOPT: Modified Adam" || f.Papers[0].SourceURL != "https://arxiv.org/abs/2411.02853" {
		t.Errorf("first paper = %+v", f.Papers[0])
	}
	if f.Metadata == nil || f.Metadata.Query != "adam optimizer variants" || f.Metadata.Model != "gpt-4o" {
		t.Errorf("metadata = %+v", f.Metadata)
	}
}

func TestReadPapersMissingKey(t *testing.T) {
	path := writeTemp(t, `{"metadata": {"query": "x"}}`)

	_, err := Read(path)
	if err == nil {
		t.Fatal("expected error for missing papers key")
	}
	if !strings.Contains(err.Error(), "no papers key") {
		t.Errorf("err = %v", err)
	}
}

func TestReadPapersSkipsMalformedEntries(t *testing.T) {
	path := writeTemp(t, `{
  "papers": [
    {"paper_name": "Good Paper", "paper_url": "https://example.org/a"},
    {"paper_url": "https://example.org/no-title"},
    {"paper_name": "", "paper_url": "https://example.org/empty-title"}
  ]
}`)

	f, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(f.Papers) != 1 || f.Papers[0].Title != "Good Paper" {
		t.Errorf("papers = %+v", f.Papers)
	}
	if f.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", f.Skipped)
	}
}

func TestReadPapersEmptyList(t *testing.T) {
	path := writeTemp(t, `{"papers": []}`)

	f, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(f.Papers) != 0 {
		t.Errorf("papers = %+v", f.Papers)
	}
}

func TestReadPapersBadJSON(t *testing.T) {
	path := writeTemp(t, `{"papers": [`)

	if _, err := Read(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	in := &File{
		Papers: []types.RequestedPaper{
			{Title: "Paper One", SourceURL: "https://example.org/1"},
		},
		Metadata: &Metadata{Query: "test", Model: "gpt-4o", Timestamp: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}
	if err := Write(path, in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(out.Papers) != 1 || out.Papers[0] != in.Papers[0] {
		t.Errorf("papers = %+v", out.Papers)
	}
	if out.Metadata == nil || out.Metadata.Query != "test" {
		t.Errorf("metadata = %+v", out.Metadata)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"paper_name": "Paper One"`) {
		t.Errorf("unexpected serialization:\n%s", data)
	}
}
