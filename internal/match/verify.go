// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/paperfetch/pkg/types"
)

// Acceptance thresholds for the verifier's decision rules.
const (
	// highSimilarity accepts on composite score alone.
	highSimilarity = 0.7

	// importantOverlap accepts when this fraction of the requested title's
	// important words appears in the candidate.
	importantOverlap = 0.8

	// maxLengthRatio rejects candidates whose normalized title is more than
	// this many times longer than the requested one.
	maxLengthRatio = 2.0

	// importantWordLen is the minimum token length (exclusive) for a token
	// to count as topically important.
	importantWordLen = 4
)

// defaultBlacklist lists normalized phrases from papers that repeatedly
// surfaced as false positives: generic mathematical-physics and medical
// vocabulary that overlaps optimizer-paper titles by accident.
var defaultBlacklist = []string{
	"existence of weak solutions",
	"continuity equation",
	"darcy law",
	"electronic health records",
	"multimodal electronic",
}

// Verifier applies the accept/reject policy to a (requested, candidate)
// title pair. Every candidate promotion goes through Verify; no caller
// bypasses it except the explicit human override in the interactive
// fallback.
type Verifier struct {
	norm      *Normalizer
	scorer    *Scorer
	blacklist []string
}

// NewVerifier builds a Verifier from cfg. Empty stop-word and blacklist
// slices select the built-in defaults. Blacklist patterns are normalized so
// they compare against normalized candidate titles (a pattern like
// "existence of weak solutions" must still match after stop-word removal).
func NewVerifier(cfg types.MatchConfig) *Verifier {
	norm := NewNormalizer(cfg.StopWords)
	patterns := cfg.BlacklistPatterns
	if len(patterns) == 0 {
		patterns = defaultBlacklist
	}
	blacklist := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if np := norm.Normalize(p); np != "" {
			blacklist = append(blacklist, np)
		}
	}
	return &Verifier{
		norm:      norm,
		scorer:    NewScorer(norm),
		blacklist: blacklist,
	}
}

// Normalizer returns the normalizer the verifier scores with, shared so the
// strategy generator tokenizes titles identically.
func (v *Verifier) Normalizer() *Normalizer { return v.norm }

// Scorer returns the composite scorer built on the verifier's normalizer.
func (v *Verifier) Scorer() *Scorer { return v.scorer }

// Verify decides whether candidateTitle names the same paper as
// requestedTitle. The first matching rule wins; Verify always returns a
// decision and never errors.
func (v *Verifier) Verify(requestedTitle, candidateTitle string) types.MatchDecision {
	similarity := v.scorer.Score(requestedTitle, candidateTitle)

	normReq := v.norm.Normalize(requestedTitle)
	normCand := v.norm.Normalize(candidateTitle)

	for _, pattern := range v.blacklist {
		if strings.Contains(normCand, pattern) && !strings.Contains(normReq, pattern) {
			return types.MatchDecision{Accepted: false, Similarity: 0.0, Reason: types.ReasonBlacklistedPattern}
		}
	}

	// A short requested title can partially contain itself in a long
	// unrelated candidate; cap the allowed length ratio.
	if normReq != "" {
		ratio := float64(utf8.RuneCountInString(normCand)) / float64(utf8.RuneCountInString(normReq))
		if ratio > maxLengthRatio {
			return types.MatchDecision{Accepted: false, Similarity: similarity, Reason: types.ReasonCandidateTooLong}
		}
	}

	if similarity >= highSimilarity {
		return types.MatchDecision{Accepted: true, Similarity: similarity, Reason: types.ReasonHighSimilarity}
	}

	if v.importantWordOverlap(normReq, normCand) >= importantOverlap {
		return types.MatchDecision{Accepted: true, Similarity: similarity, Reason: types.ReasonImportantWordOverlap}
	}

	if strings.Contains(normCand, normReq) || strings.Contains(normReq, normCand) {
		return types.MatchDecision{Accepted: true, Similarity: similarity, Reason: types.ReasonTitleContainment}
	}

	return types.MatchDecision{Accepted: false, Similarity: similarity, Reason: types.ReasonLowSimilarity}
}

// importantWordOverlap returns the fraction of the requested title's
// important words (longer than four characters) present in the candidate,
// or 0 when the requested title has none.
func (v *Verifier) importantWordOverlap(normReq, normCand string) float64 {
	candWords := make(map[string]bool)
	for _, w := range strings.Fields(normCand) {
		candWords[w] = true
	}

	important := 0
	present := 0
	for _, w := range strings.Fields(normReq) {
		if utf8.RuneCountInString(w) <= importantWordLen {
			continue
		}
		important++
		if candWords[w] {
			present++
		}
	}
	if important == 0 {
		return 0
	}
	return float64(present) / float64(important)
}
