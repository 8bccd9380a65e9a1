// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperfetch/internal/arxiv"
	"github.com/pdiddy/paperfetch/internal/resolve"
	"github.com/pdiddy/paperfetch/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve \"paper title\"",
	Short: "Resolve a single title against arXiv without downloading",
	Long: `Resolve runs the full resolution pipeline for one title and prints the
decision: the matched arXiv record, the similarity score, and which rule
accepted or rejected it. Useful for inspecting why a fetch run matched (or
refused) a particular paper.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("url", "", "source URL of the paper (enables venue-specific strategies)")
	resolveCmd.Flags().Float64("threshold", 0, "minimum similarity for the best-candidate fallback (default 0.5)")
	resolveCmd.Flags().Bool("json", false, "output the resolution result as JSON")
	resolveCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	title := args[0]
	sourceURL, _ := cmd.Flags().GetString("url")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	asJSON, _ := cmd.Flags().GetBool("json")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	searcher := &arxiv.Client{
		HTTP:      &http.Client{Timeout: timeout},
		UserAgent: defaultUserAgent,
	}

	progress := os.Stdout
	if asJSON {
		// Keep stdout clean for the JSON document.
		progress = os.Stderr
	}

	resolver := resolve.New(searcher, nil, types.ResolveConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
		Threshold:  threshold,
	}, progress)

	res := resolver.Resolve(cmd.Context(), types.RequestedPaper{Title: title, SourceURL: sourceURL})

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	} else {
		fmt.Println()
		if res.Resolved() {
			fmt.Printf("Matched: %s\n  arXiv ID: %s\n  URL: %s\n", res.Match.Title, res.Match.ID, res.Match.EntryURL)
			if res.Decision != nil {
				fmt.Printf("  Similarity: %.2f (%s)\n", res.Decision.Similarity, res.Decision.Reason)
			}
			if res.StrategyIndex > 0 {
				fmt.Printf("  Strategy: %d\n", res.StrategyIndex)
			}
		} else {
			fmt.Printf("No match: %s\n", res.Err)
		}
	}

	if !res.Resolved() {
		return fmt.Errorf("unresolved: %s", title)
	}
	return nil
}
