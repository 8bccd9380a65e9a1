// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve drives the title-resolution pipeline: it walks the search
// strategies in order, verifies every candidate the repository returns, and
// selects the best accepted match, falling back to the threshold rule, the
// interactive prompt, and finally an unresolved outcome.
package resolve

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/pdiddy/paperfetch/internal/match"
	"github.com/pdiddy/paperfetch/internal/strategy"
	"github.com/pdiddy/paperfetch/pkg/types"
)

// ErrNoMatch is the per-paper error reason recorded when every strategy and
// fallback came up empty.
const ErrNoMatch = "no repository match found"

// defaultVenueDomains mark proceedings sites whose titles drift from
// canonical repository titles.
var defaultVenueDomains = []string{
	"neurips", "nips.cc", "proceedings.neurips", "proceedings.nips",
}

const (
	defaultThreshold  = 0.5
	defaultPaperDelay = 3 * time.Second

	// venueThresholdFloor and venueThresholdCut loosen the acceptance
	// threshold for special-venue papers, whose titles rarely survive
	// exact-phrase search.
	venueThresholdFloor = 0.4
	venueThresholdCut   = 0.2
)

// Searcher is the repository-search collaborator.
type Searcher interface {
	// Search runs one query spec and returns candidate records.
	Search(ctx context.Context, spec strategy.QuerySpec) ([]types.Candidate, error)

	// FetchByID returns the record for a repository identifier, or nil
	// when the repository has no such entry.
	FetchByID(ctx context.Context, id string) (*types.Candidate, error)

	// IDFromURL extracts a repository identifier from a source URL, or ""
	// when the URL does not encode one.
	IDFromURL(sourceURL string) string
}

// Fallback is the interactive manual-lookup collaborator. A nil candidate
// with nil error means the user skipped the paper.
type Fallback interface {
	Lookup(ctx context.Context, paper types.RequestedPaper) (*types.Candidate, error)
}

// Resolver resolves requested papers against the repository.
type Resolver struct {
	searcher Searcher
	fallback Fallback
	verifier *match.Verifier
	cfg      types.ResolveConfig
	w        io.Writer
}

// New builds a Resolver. fallback may be nil when manual lookup is
// disabled; progress and warnings are written to w.
func New(searcher Searcher, fallback Fallback, cfg types.ResolveConfig, w io.Writer) *Resolver {
	if cfg.Threshold <= 0 {
		cfg.Threshold = defaultThreshold
	}
	if cfg.PaperDelay <= 0 {
		cfg.PaperDelay = defaultPaperDelay
	}
	if len(cfg.VenueDomains) == 0 {
		cfg.VenueDomains = defaultVenueDomains
	}
	return &Resolver{
		searcher: searcher,
		fallback: fallback,
		verifier: match.NewVerifier(cfg.Match),
		cfg:      cfg,
		w:        w,
	}
}

// Verifier exposes the resolver's verifier for decision display.
func (r *Resolver) Verifier() *match.Verifier { return r.verifier }

// scoredCandidate pairs a candidate with its verdict and the strategy that
// produced it.
type scoredCandidate struct {
	cand     types.Candidate
	decision types.MatchDecision
	rawScore float64
	strategy int
}

// Resolve resolves one requested paper. It never returns an error; failure
// is an unresolved result with a reason string.
func (r *Resolver) Resolve(ctx context.Context, paper types.RequestedPaper) types.ResolutionResult {
	res := types.ResolutionResult{Paper: paper}

	// A source URL that names the repository record directly skips the
	// strategy search; the URL is authoritative, like a human override.
	if id := r.searcher.IDFromURL(paper.SourceURL); id != "" {
		cand, err := r.searcher.FetchByID(ctx, id)
		switch {
		case err != nil:
			fmt.Fprintf(r.w, "warning: fetch by ID %s failed: %v\n", id, err)
		case cand != nil:
			fmt.Fprintf(r.w, "resolved via source URL: %s (%s)\n", cand.Title, cand.ID)
			res.Match = cand
			res.ResolvedAt = time.Now()
			return res
		default:
			fmt.Fprintf(r.w, "no repository entry for ID %s, falling back to search\n", id)
		}
	}

	specialVenue := r.isSpecialVenue(paper.SourceURL)
	threshold := r.cfg.Threshold
	if specialVenue {
		threshold = math.Max(venueThresholdFloor, threshold-venueThresholdCut)
		fmt.Fprintf(r.w, "special venue detected, using extended strategies (threshold %.2f)\n", threshold)
	}

	accepted, seen := r.runStrategies(ctx, paper.Title, specialVenue)

	if best := bestAccepted(accepted); best != nil {
		fmt.Fprintf(r.w, "best verified match: %s (similarity %.2f, %s)\n",
			best.cand.Title, best.decision.Similarity, best.decision.Reason)
		res.Match = &best.cand
		res.Decision = &best.decision
		res.StrategyIndex = best.strategy
		res.ResolvedAt = time.Now()
		return res
	}

	// No verified candidate anywhere: take the highest raw score ever seen,
	// but only above the threshold and only if it survives re-verification.
	if best := bestRaw(seen); best != nil && best.rawScore >= threshold {
		decision := r.verifier.Verify(paper.Title, best.cand.Title)
		if decision.Accepted {
			fmt.Fprintf(r.w, "best unverified match accepted: %s (similarity %.2f, %s)\n",
				best.cand.Title, decision.Similarity, decision.Reason)
			res.Match = &best.cand
			res.Decision = &decision
			res.StrategyIndex = best.strategy
			res.ResolvedAt = time.Now()
			return res
		}
		fmt.Fprintf(r.w, "best unverified match rejected: %s (%s)\n", best.cand.Title, decision.Reason)
	}

	if r.cfg.ManualFallback && r.fallback != nil {
		cand, err := r.fallback.Lookup(ctx, paper)
		if err != nil {
			fmt.Fprintf(r.w, "warning: manual lookup failed: %v\n", err)
		} else if cand != nil {
			res.Match = cand
			res.Manual = true
			res.ResolvedAt = time.Now()
			return res
		}
	}

	res.Err = ErrNoMatch
	res.ResolvedAt = time.Now()
	return res
}

// runStrategies executes the search plan, verifying every candidate. It
// stops at the first strategy that yields an accepted candidate: earlier
// strategies are more precise and therefore trusted over later ones.
// Transient search failures abandon only the failing strategy.
func (r *Resolver) runStrategies(ctx context.Context, title string, specialVenue bool) (accepted, seen []scoredCandidate) {
	specs := strategy.Strategies(title, specialVenue, r.verifier.Normalizer())
	scorer := r.verifier.Scorer()

	for i, spec := range specs {
		num := i + 1
		fmt.Fprintf(r.w, "trying search strategy %d...\n", num)

		candidates, err := r.searcher.Search(ctx, spec)
		if err != nil {
			fmt.Fprintf(r.w, "warning: search strategy %d failed: %v\n", num, err)
			continue
		}

		for _, cand := range candidates {
			decision := r.verifier.Verify(title, cand.Title)
			fmt.Fprintf(r.w, "  %q similarity %.2f (%s)\n", cand.Title, decision.Similarity, decision.Reason)

			sc := scoredCandidate{
				cand:     cand,
				decision: decision,
				rawScore: scorer.Score(title, cand.Title),
				strategy: num,
			}
			seen = append(seen, sc)
			if decision.Accepted {
				accepted = append(accepted, sc)
			}
		}

		if len(accepted) > 0 {
			fmt.Fprintf(r.w, "found %d verified match(es) using strategy %d\n", len(accepted), num)
			break
		}
	}
	return accepted, seen
}

// bestAccepted returns the accepted candidate with the highest verified
// similarity; ties keep the first encountered.
func bestAccepted(accepted []scoredCandidate) *scoredCandidate {
	var best *scoredCandidate
	for i := range accepted {
		if best == nil || accepted[i].decision.Similarity > best.decision.Similarity {
			best = &accepted[i]
		}
	}
	return best
}

// bestRaw returns the candidate with the highest raw composite score; ties
// keep the first encountered.
func bestRaw(seen []scoredCandidate) *scoredCandidate {
	var best *scoredCandidate
	for i := range seen {
		if best == nil || seen[i].rawScore > best.rawScore {
			best = &seen[i]
		}
	}
	return best
}

// isSpecialVenue reports whether the source URL belongs to a configured
// proceedings venue.
func (r *Resolver) isSpecialVenue(sourceURL string) bool {
	lower := strings.ToLower(sourceURL)
	for _, domain := range r.cfg.VenueDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}
