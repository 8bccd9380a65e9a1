// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperfetch/internal/arxiv"
	"github.com/pdiddy/paperfetch/internal/display"
	"github.com/pdiddy/paperfetch/internal/download"
	"github.com/pdiddy/paperfetch/internal/manual"
	"github.com/pdiddy/paperfetch/internal/papers"
	"github.com/pdiddy/paperfetch/internal/resolve"
	"github.com/pdiddy/paperfetch/internal/results"
	"github.com/pdiddy/paperfetch/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Resolve a paper list against arXiv and download the PDFs",
	Long: `Fetch reads a paper list (see discover), resolves each title against
arXiv, and downloads the matching PDFs to the output directory. Papers whose
source URL already names an arXiv record skip the search entirely.

Each run writes download_results.json next to the paper list and appends to
the resolution log, so failed papers can be retried with --retry-failed.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("json", filepath.Join(defaultJSONDir, "papers.json"), "paper-list file to read")
	fetchCmd.Flags().String("output", defaultPDFDir, "directory to save downloaded PDFs")
	fetchCmd.Flags().Float64("threshold", 0, "minimum similarity for the best-candidate fallback (default 0.5)")
	fetchCmd.Flags().Bool("manual", false, "prompt interactively for papers that resolve to nothing")
	fetchCmd.Flags().Bool("retry-failed", false, "fetch only the papers that failed in previous runs")
	fetchCmd.Flags().Bool("csl", false, "also write a CSL-YAML bibliography next to the paper list")
	fetchCmd.Flags().Duration("delay", 0, "pause between consecutive papers (default 3s)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	jsonPath, _ := cmd.Flags().GetString("json")
	outputDir, _ := cmd.Flags().GetString("output")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	manualFlag, _ := cmd.Flags().GetBool("manual")
	retryFailed, _ := cmd.Flags().GetBool("retry-failed")
	writeCSL, _ := cmd.Flags().GetBool("csl")
	delay, _ := cmd.Flags().GetDuration("delay")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	store, err := results.Open(types.ResultsConfig{})
	if err != nil {
		return err
	}
	defer store.Close()

	var toFetch []types.RequestedPaper
	if retryFailed {
		toFetch, err = store.FailedPapers()
		if err != nil {
			return err
		}
		if len(toFetch) == 0 {
			fmt.Println("No failed papers found to retry.")
			return nil
		}
		fmt.Printf("Retrying %d previously failed paper(s).\n", len(toFetch))
	} else {
		f, err := papers.Read(jsonPath)
		if err != nil {
			return err
		}
		if f.Skipped > 0 {
			fmt.Fprintf(os.Stderr, "warning: skipped %d malformed paper entries\n", f.Skipped)
		}
		toFetch = f.Papers
	}
	if len(toFetch) == 0 {
		return fmt.Errorf("no papers to fetch in %s", jsonPath)
	}

	client := &http.Client{Timeout: timeout}
	searcher := &arxiv.Client{HTTP: client, UserAgent: defaultUserAgent}

	var fallback resolve.Fallback
	if manualFlag {
		fallback = manual.New(searcher, os.Stdin, os.Stdout)
	}

	resolver := resolve.New(searcher, fallback, types.ResolveConfig{
		HTTPConfig:     types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
		Threshold:      threshold,
		ManualFallback: manualFlag,
		PaperDelay:     delay,
	}, os.Stdout)

	dl := download.New(client, searcher, types.DownloadConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
		OutputDir:  outputDir,
	}, os.Stdout)

	batch, summary := resolver.ResolveBatch(cmd.Context(), toFetch, dl)

	if err := store.RecordBatch(batch); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording results: %v\n", err)
	}

	reportPath := filepath.Join(filepath.Dir(jsonPath), "download_results.json")
	if err := results.WriteReport(reportPath, results.FromResults(batch)); err != nil {
		return err
	}
	fmt.Printf("\nDownload results saved to: %s\n", reportPath)

	if writeCSL {
		cslPath := filepath.Join(filepath.Dir(jsonPath), "bibliography.yaml")
		cslFile, err := os.Create(cslPath)
		if err != nil {
			return fmt.Errorf("creating bibliography: %w", err)
		}
		cslErr := display.FormatCSL(batch, cslFile)
		if closeErr := cslFile.Close(); cslErr == nil {
			cslErr = closeErr
		}
		if cslErr != nil {
			return fmt.Errorf("writing bibliography: %w", cslErr)
		}
		fmt.Printf("Bibliography saved to: %s\n", cslPath)
	}

	fmt.Println()
	fmt.Println(display.ResultsTable(batch))

	if summary.HasFailures() {
		return fmt.Errorf("%d paper(s) failed", summary.Failed)
	}
	return nil
}
