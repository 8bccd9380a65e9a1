// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manual implements the interactive last-resort lookup for papers
// the automated strategies could not resolve. The user either names a
// repository ID outright, runs a hand-written search and picks from the
// hits, or skips the paper.
package manual

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/paperfetch/internal/strategy"
	"github.com/pdiddy/paperfetch/pkg/types"
)

// searchLimit caps the hits shown for a hand-written query.
const searchLimit = 10

// Searcher is the repository lookup the prompter needs.
type Searcher interface {
	Search(ctx context.Context, spec strategy.QuerySpec) ([]types.Candidate, error)
	FetchByID(ctx context.Context, id string) (*types.Candidate, error)
}

// Prompter runs the interactive lookup dialog. It satisfies the resolver's
// fallback interface: a (nil, nil) return means the user skipped the paper.
type Prompter struct {
	searcher Searcher
	in       *bufio.Reader
	out      io.Writer
}

// New builds a Prompter reading choices from in and writing the dialog to
// out.
func New(searcher Searcher, in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		searcher: searcher,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Lookup walks the user through resolving one paper by hand. Any match it
// returns is a human override and is not re-verified downstream.
func (p *Prompter) Lookup(ctx context.Context, paper types.RequestedPaper) (*types.Candidate, error) {
	fmt.Fprintf(p.out, "\nManual lookup for: %s\n", paper.Title)
	if paper.SourceURL != "" {
		fmt.Fprintf(p.out, "  source: %s\n", paper.SourceURL)
	}

	for {
		fmt.Fprint(p.out, "\nOptions:\n  1) enter repository ID\n  2) search with different terms\n  3) skip this paper\nchoice> ")
		choice, err := p.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, err
		}

		switch choice {
		case "1":
			cand, err := p.byID(ctx)
			if err != nil {
				return nil, err
			}
			if cand != nil {
				return cand, nil
			}
		case "2":
			cand, err := p.bySearch(ctx)
			if err != nil {
				return nil, err
			}
			if cand != nil {
				return cand, nil
			}
		case "3", "":
			fmt.Fprintln(p.out, "skipped")
			return nil, nil
		default:
			fmt.Fprintf(p.out, "unrecognized choice %q\n", choice)
		}
	}
}

// byID fetches a user-supplied repository ID and asks for confirmation.
// A nil candidate sends the dialog back to the options menu.
func (p *Prompter) byID(ctx context.Context) (*types.Candidate, error) {
	fmt.Fprint(p.out, "repository ID> ")
	id, err := p.readLine()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}

	cand, err := p.searcher.FetchByID(ctx, id)
	if err != nil {
		fmt.Fprintf(p.out, "lookup failed: %v\n", err)
		return nil, nil
	}
	if cand == nil {
		fmt.Fprintf(p.out, "no repository entry for ID %s\n", id)
		return nil, nil
	}

	fmt.Fprintf(p.out, "found: %s (%s)\naccept? [y/N]> ", cand.Title, cand.ID)
	answer, err := p.readLine()
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
		return cand, nil
	}
	return nil, nil
}

// bySearch runs a free-text search with user-supplied terms and lets the
// user pick a hit by number. Zero cancels back to the options menu.
func (p *Prompter) bySearch(ctx context.Context) (*types.Candidate, error) {
	fmt.Fprint(p.out, "search terms> ")
	terms, err := p.readLine()
	if err != nil {
		return nil, err
	}
	if terms == "" {
		return nil, nil
	}

	candidates, err := p.searcher.Search(ctx, strategy.QuerySpec{Terms: terms, MaxResults: searchLimit})
	if err != nil {
		fmt.Fprintf(p.out, "search failed: %v\n", err)
		return nil, nil
	}
	if len(candidates) == 0 {
		fmt.Fprintln(p.out, "no results")
		return nil, nil
	}

	for i, cand := range candidates {
		fmt.Fprintf(p.out, "  %d) %s (%s)\n", i+1, cand.Title, cand.ID)
	}
	fmt.Fprint(p.out, "pick [0 to cancel]> ")
	answer, err := p.readLine()
	if err != nil {
		return nil, err
	}
	n, convErr := strconv.Atoi(answer)
	if convErr != nil || n < 0 || n > len(candidates) {
		fmt.Fprintf(p.out, "invalid pick %q\n", answer)
		return nil, nil
	}
	if n == 0 {
		return nil, nil
	}
	return &candidates[n-1], nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return line, err
	}
	return line, nil
}
