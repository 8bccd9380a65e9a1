// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match decides whether a repository candidate title is the same
// paper as an informally named requested title. It contains the title
// normalizer, the composite similarity scorer, and the accept/reject
// verifier.
package match

import (
	"strings"
	"unicode"
)

// defaultStopWords are dropped during normalization: articles, conjunctions,
// and common prepositions that carry no topical signal.
var defaultStopWords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "with", "for", "of", "to", "by",
}

// greekNames spells out Greek-letter symbols that appear in optimizer and
// physics paper titles (e.g. "β-VAE") so they compare equal to their
// spelled-out variants.
var greekNames = map[rune]string{
	'β': "beta",
	'α': "alpha",
	'γ': "gamma",
	'δ': "delta",
	'ε': "epsilon",
}

// Normalizer canonicalizes a raw title for comparison: lowercase,
// punctuation stripped, Greek letters spelled out, stop words removed,
// whitespace collapsed. Normalization is a pure function of the input.
type Normalizer struct {
	stop map[string]bool
}

// NewNormalizer returns a Normalizer with the given stop-word set. An empty
// slice selects the default set.
func NewNormalizer(stopWords []string) *Normalizer {
	if len(stopWords) == 0 {
		stopWords = defaultStopWords
	}
	stop := make(map[string]bool, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = true
	}
	return &Normalizer{stop: stop}
}

// Normalize returns the canonical form of title. Empty input yields empty
// output. Normalize is idempotent: applying it twice equals applying it once.
func (n *Normalizer) Normalize(title string) string {
	return strings.Join(n.Tokens(title), " ")
}

// Tokens returns the normalized title split into its tokens.
func (n *Normalizer) Tokens(title string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case greekNames[r] != "":
			b.WriteString(greekNames[r])
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := fields[:0]
	for _, w := range fields {
		if !n.stop[w] {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// TokenSet returns the normalized tokens of title as a set.
func (n *Normalizer) TokenSet(title string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range n.Tokens(title) {
		set[w] = true
	}
	return set
}
