// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperfetch/internal/discover"
	"github.com/pdiddy/paperfetch/internal/display"
	"github.com/pdiddy/paperfetch/internal/papers"
	"github.com/pdiddy/paperfetch/pkg/types"
)

var discoverCmd = &cobra.Command{
	Use:   "discover \"research topic\"",
	Short: "Find papers on a topic via model-driven web search",
	Long: `Discover asks a web-search-capable model for recent research papers on a
topic and saves the paper list as JSON under data/json/. The list feeds the
fetch subcommand.

The OpenAI API key is read from .secrets/openai-api-key or the
OPENAI_API_KEY environment variable.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().String("output", "", "paper-list file to write (default derived from the query)")
	discoverCmd.Flags().String("model", "gpt-4o", "model used for web-search discovery")
	discoverCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	query := args[0]

	model, _ := cmd.Flags().GetString("model")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	apiKey := secretDefault("openai-api-key", os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return fmt.Errorf("no OpenAI API key: create .secrets/openai-api-key or set OPENAI_API_KEY")
	}

	cfg := types.DiscoveryConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
		Model:      model,
		APIKey:     apiKey,
		OutputDir:  defaultJSONDir,
	}

	backend := &discover.OpenAIBackend{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		Client: &http.Client{Timeout: cfg.Timeout},
	}
	d := discover.New(backend, cfg, os.Stdout)

	// The discovery request runs a web search server-side and can take a
	// while; bound it by the HTTP timeout, not a separate context.
	f, err := d.Discover(cmd.Context(), query)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = discover.OutputPath(cfg.OutputDir, query)
	}
	if err := os.MkdirAll(defaultJSONDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := papers.Write(outPath, f); err != nil {
		return err
	}
	fmt.Printf("Paper list saved to %s\n\n", outPath)

	fmt.Println(display.PapersTable(f))
	return nil
}
