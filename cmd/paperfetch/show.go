// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperfetch/internal/display"
	"github.com/pdiddy/paperfetch/internal/papers"
	"github.com/pdiddy/paperfetch/internal/results"
	"github.com/pdiddy/paperfetch/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show [papers.json]",
	Short: "Display a paper list or recent resolution results",
	Long: `Show renders a paper list as a table. With --recent it instead lists the
most recent entries from the resolution log.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().Bool("plain", false, "plain text output instead of a table")
	showCmd.Flags().String("output", "", "also write the plain rendering to a file")
	showCmd.Flags().Int("recent", 0, "show the last N resolution-log entries instead of a paper list")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	recent, _ := cmd.Flags().GetInt("recent")
	if recent > 0 {
		store, err := results.Open(types.ResultsConfig{})
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(recent)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Resolution log is empty.")
			return nil
		}
		fmt.Println(display.ResultsTable(entries))
		return nil
	}

	jsonPath := filepath.Join(defaultJSONDir, "papers.json")
	if len(args) == 1 {
		jsonPath = args[0]
	}

	f, err := papers.Read(jsonPath)
	if err != nil {
		return err
	}
	if len(f.Papers) == 0 {
		fmt.Println("No papers found in the paper list.")
		return nil
	}

	plain, _ := cmd.Flags().GetBool("plain")
	if plain {
		display.WritePlain(os.Stdout, f)
	} else {
		fmt.Println(display.PapersTable(f))
	}

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		display.WritePlain(out, f)
		if err := out.Close(); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		fmt.Printf("Saved to %s\n", outPath)
	}
	return nil
}
