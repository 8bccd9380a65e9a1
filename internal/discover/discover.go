// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover builds paper lists by asking a web-search-capable model
// for recent papers on a topic. The model's report is parsed into the
// paper-list format, tolerating the many shapes of almost-JSON the model
// produces.
package discover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/pdiddy/paperfetch/internal/papers"
	"github.com/pdiddy/paperfetch/pkg/types"
)

// reportPromptTmpl asks the model for a JSON paper list. The model rarely
// honors the format exactly; extract.go handles the deviations.
var reportPromptTmpl = template.Must(template.New("report").Parse(`Please provide a comprehensive report on recent research papers about "{{.Query}}".
The report should reference up-to-date research from relevant conferences and journals.
Output should be in JSON format with the following structure:
{
  "papers": [
    {
      "paper_name": "Full title of the paper",
      "paper_url": "URL to access the paper (preferably direct link or arXiv)"
    },
    ...
  ]
}`))

// Backend produces the model's report text for a prompt.
type Backend interface {
	Report(ctx context.Context, prompt string) (string, error)
}

// Discoverer turns a topic query into a paper list.
type Discoverer struct {
	backend Backend
	cfg     types.DiscoveryConfig
	w       io.Writer
}

// New builds a Discoverer writing progress to w.
func New(backend Backend, cfg types.DiscoveryConfig, w io.Writer) *Discoverer {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	return &Discoverer{backend: backend, cfg: cfg, w: w}
}

// Discover asks the model for papers about query and parses the response.
// An empty paper list is an error: a report that yields nothing usable
// should fail loudly rather than produce an empty file.
func (d *Discoverer) Discover(ctx context.Context, query string) (*papers.File, error) {
	var prompt bytes.Buffer
	if err := reportPromptTmpl.Execute(&prompt, struct{ Query string }{query}); err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	text, err := d.backend.Report(ctx, prompt.String())
	if err != nil {
		return nil, fmt.Errorf("requesting report: %w", err)
	}

	list, ok := parseDirect(text)
	if !ok {
		fmt.Fprintln(d.w, "response is not valid JSON, extracting papers from text")
		list = ExtractPapers(text)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no papers found in model response")
	}
	fmt.Fprintf(d.w, "found %d papers\n", len(list))

	return &papers.File{
		Papers: list,
		Metadata: &papers.Metadata{
			Query:     query,
			Model:     d.cfg.Model,
			Timestamp: time.Now().UTC(),
		},
	}, nil
}

// parseDirect tries to read the whole response as the requested JSON
// shape, also accepting a bare array or a single paper object.
func parseDirect(text string) ([]types.RequestedPaper, bool) {
	trimmed := strings.TrimSpace(text)

	var wrapped struct {
		Papers []types.RequestedPaper `json:"papers"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapped); err == nil && wrapped.Papers != nil {
		return filterPapers(wrapped.Papers), true
	}

	var list []types.RequestedPaper
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		return filterPapers(list), true
	}

	var single types.RequestedPaper
	if err := json.Unmarshal([]byte(trimmed), &single); err == nil && single.Title != "" {
		return []types.RequestedPaper{single}, true
	}

	return nil, false
}

func filterPapers(in []types.RequestedPaper) []types.RequestedPaper {
	var out []types.RequestedPaper
	for _, p := range in {
		if p.Title != "" && p.SourceURL != "" {
			out = append(out, p)
		}
	}
	return out
}

var unsafeChars = regexp.MustCompile(`[^\w\s-]`)
var separators = regexp.MustCompile(`[-\s]+`)

// OutputPath derives the paper-list filename for a query under dir.
func OutputPath(dir, query string) string {
	safe := unsafeChars.ReplaceAllString(query, "")
	safe = strings.ToLower(strings.TrimSpace(safe))
	safe = separators.ReplaceAllString(safe, "_")
	return filepath.Join(dir, safe+"_papers.json")
}

// openAIAPIBase is the OpenAI Responses API endpoint. Package-level var for
// test substitution.
var openAIAPIBase = "https://api.openai.com/v1/responses"

// OpenAIBackend calls the OpenAI Responses API with the web-search tool
// enabled.
type OpenAIBackend struct {
	APIKey string
	Model  string
	Client *http.Client
}

type openAIRequest struct {
	Model string       `json:"model"`
	Tools []openAITool `json:"tools"`
	Input string       `json:"input"`
}

type openAITool struct {
	Type string `json:"type"`
}

type openAIResponse struct {
	Output []openAIOutput `json:"output"`
}

type openAIOutput struct {
	Type    string          `json:"type"`
	Content []openAIContent `json:"content"`
}

type openAIContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Report sends the prompt and returns the concatenated output text.
func (b *OpenAIBackend) Report(ctx context.Context, prompt string) (string, error) {
	reqBody := openAIRequest{
		Model: b.Model,
		Tools: []openAITool{{Type: "web_search_preview"}},
		Input: prompt,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIAPIBase, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI API returned %d: %s", resp.StatusCode, string(body))
	}

	var oResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&oResp); err != nil {
		return "", fmt.Errorf("decoding OpenAI response: %w", err)
	}

	var sb strings.Builder
	for _, out := range oResp.Output {
		if out.Type != "message" {
			continue
		}
		for _, content := range out.Content {
			if content.Type == "output_text" {
				sb.WriteString(content.Text)
			}
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("OpenAI API returned no output text")
	}
	return sb.String(), nil
}
