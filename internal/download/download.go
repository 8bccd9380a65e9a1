// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download fetches paper PDFs for finalized resolutions. Resolved
// papers download from the repository's PDF endpoint; unresolved papers get
// two last-chance paths, a PDF URL derived from a proceedings page and an
// open-access lookup for DOI source URLs.
package download

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/paperfetch/internal/httputil"
	"github.com/pdiddy/paperfetch/pkg/types"
)

// openAlexAPIBase is the OpenAlex works endpoint. Declared as a var so tests
// can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works/"

// maxFilenameLen caps generated PDF filenames; longer titles are truncated
// with a trailing ellipsis.
const maxFilenameLen = 100

// URLSource maps a repository identifier to its PDF URL.
type URLSource interface {
	PDFURL(id string) string
}

// Downloader writes PDFs under the configured output directory and records
// the outcome on the resolution result.
type Downloader struct {
	client *http.Client
	urls   URLSource
	cfg    types.DownloadConfig
	w      io.Writer
}

// New builds a Downloader. Progress and warnings are written to w.
func New(client *http.Client, urls URLSource, cfg types.DownloadConfig, w io.Writer) *Downloader {
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join("data", "pdf")
	}
	return &Downloader{client: client, urls: urls, cfg: cfg, w: w}
}

// Download fetches the PDF for one resolution result. For a resolved match
// it uses the repository PDF endpoint; for an unresolved paper it tries a
// direct proceedings PDF URL, then an open-access lookup when the source
// URL is a DOI. A successful direct fetch clears the result's error.
func (d *Downloader) Download(ctx context.Context, res *types.ResolutionResult) error {
	if res.Resolved() {
		return d.downloadResolved(ctx, res)
	}

	if direct := DirectPDFURL(res.Paper.SourceURL); direct != "" {
		fmt.Fprintf(d.w, "attempting direct proceedings download: %s\n", direct)
		return d.downloadDirect(ctx, res, direct)
	}

	if doi := doiFromURL(res.Paper.SourceURL); doi != "" {
		oaURL, err := d.resolveOpenAlex(ctx, doi)
		if err != nil {
			return fmt.Errorf("open-access lookup for %s: %w", doi, err)
		}
		if oaURL == "" {
			return nil
		}
		fmt.Fprintf(d.w, "attempting open-access download: %s\n", oaURL)
		return d.downloadDirect(ctx, res, oaURL)
	}

	return nil
}

func (d *Downloader) downloadResolved(ctx context.Context, res *types.ResolutionResult) error {
	destPath := d.target(res.Paper.Title)

	// An existing file counts as downloaded; re-fetching wastes the
	// host's rate budget.
	if _, err := os.Stat(destPath); err == nil {
		fmt.Fprintf(d.w, "skipped: %s (already exists)\n", filepath.Base(destPath))
		res.Downloaded = true
		res.PDFPath = destPath
		return nil
	}

	pdfURL := d.urls.PDFURL(res.Match.ID)
	fmt.Fprintf(d.w, "downloading: %s\n", filepath.Base(destPath))
	if err := d.fetchFile(ctx, pdfURL, destPath); err != nil {
		return fmt.Errorf("downloading %s: %w", res.Match.ID, err)
	}
	res.Downloaded = true
	res.PDFPath = destPath
	return nil
}

func (d *Downloader) downloadDirect(ctx context.Context, res *types.ResolutionResult, url string) error {
	destPath := d.target(res.Paper.Title)
	if _, err := os.Stat(destPath); err == nil {
		fmt.Fprintf(d.w, "skipped: %s (already exists)\n", filepath.Base(destPath))
	} else if err := d.fetchFile(ctx, url, destPath); err != nil {
		return fmt.Errorf("direct download: %w", err)
	}
	res.Downloaded = true
	res.DirectDownload = true
	res.PDFPath = destPath
	res.Err = ""
	return nil
}

// target returns the destination path for a paper title.
func (d *Downloader) target(title string) string {
	return filepath.Join(d.cfg.OutputDir, CleanFilename(title)+".pdf")
}

// fetchFile downloads url to destPath via a temporary file, renaming only
// on success so a partial download never masquerades as a PDF.
func (d *Downloader) fetchFile(ctx context.Context, url, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", d.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, d.client, req, 0)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".paperfetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// CleanFilename turns a paper title into a filesystem-safe base name:
// characters that are invalid on common filesystems become underscores, and
// overlong names are truncated with an ellipsis.
func CleanFilename(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, title)

	runes := []rune(cleaned)
	if len(runes) > maxFilenameLen {
		cleaned = string(runes[:maxFilenameLen-3]) + "..."
	}
	return cleaned
}

// DirectPDFURL derives the PDF URL from a proceedings abstract page URL, or
// returns "" when the URL has no known derivation. Proceedings sites link
// abstracts at .../hash/<hex>-Abstract*.html with the PDF at
// .../file/<hex>-Paper*.pdf.
func DirectPDFURL(sourceURL string) string {
	if !strings.Contains(sourceURL, "-Abstract") || !strings.HasSuffix(sourceURL, ".html") {
		return ""
	}
	pdf := strings.Replace(sourceURL, "/hash/", "/file/", 1)
	pdf = strings.Replace(pdf, "-Abstract", "-Paper", 1)
	return strings.TrimSuffix(pdf, ".html") + ".pdf"
}

// doiFromURL extracts the DOI from a doi.org source URL, or returns "".
func doiFromURL(sourceURL string) string {
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/"} {
		if doi, ok := strings.CutPrefix(sourceURL, prefix); ok && doi != "" {
			return doi
		}
	}
	return ""
}

// openAlexResponse captures the fields we need from an OpenAlex work record.
type openAlexResponse struct {
	BestOALocation *openAlexLocation `json:"best_oa_location"`
}

type openAlexLocation struct {
	PDFURL string `json:"pdf_url"`
}

// resolveOpenAlex queries OpenAlex for a DOI and returns the open-access
// PDF URL, or "" when the work has no open-access PDF.
func (d *Downloader) resolveOpenAlex(ctx context.Context, doi string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openAlexAPIBase+"https://doi.org/"+doi, nil)
	if err != nil {
		return "", fmt.Errorf("creating OpenAlex request: %w", err)
	}
	req.Header.Set("User-Agent", d.cfg.UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oa openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oa); err != nil {
		return "", fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	if oa.BestOALocation == nil {
		return "", nil
	}
	return oa.BestOALocation.PDFURL, nil
}
