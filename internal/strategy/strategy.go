// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package strategy produces the ordered sequence of repository search
// queries for a requested title, from high-precision exact-phrase searches
// down to loose free-text ones. Each strategy is a pure query descriptor;
// the orchestrator decides how many actually get executed.
package strategy

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/paperfetch/internal/match"
)

// QuerySpec describes one search attempt: the query terms, whether they are
// an exact phrase, whether to restrict the search to the title field, and
// the result cap. Results are always requested in relevance order.
type QuerySpec struct {
	Terms      string
	Phrase     bool
	TitleField bool
	MaxResults int
}

// conceptSeparators mark where a title's main concept ends. Checked in this
// order; the first separator present in the title wins.
var conceptSeparators = []string{" for ", " with ", " using ", " via ", " in ", " on "}

// distinctiveWordLen is the minimum token length (exclusive) for the
// key-term strategies.
const distinctiveWordLen = 4

// Strategies returns the ordered search plan for title. The four base
// strategies trade precision for recall as the index grows; the three
// venue strategies are appended only for special proceedings venues, whose
// titles drift too far from canonical repository titles for exact-phrase
// search. Specs with no terms (e.g. a title of only stop words) are
// omitted, preserving the order of the rest.
func Strategies(title string, specialVenue bool, norm *match.Normalizer) []QuerySpec {
	tokens := norm.Tokens(title)

	specs := []QuerySpec{
		{Terms: title, Phrase: true, TitleField: true, MaxResults: 5},
		{Terms: joinFirst(tokens, 8), Phrase: true, TitleField: true, MaxResults: 10},
		{Terms: joinFirst(tokens, 5), Phrase: true, TitleField: true, MaxResults: 10},
		{Terms: strings.Join(longestTokens(tokens, 3), " "), MaxResults: 10},
	}

	if specialVenue {
		specs = append(specs,
			QuerySpec{Terms: norm.Normalize(mainConcept(title)), Phrase: true, MaxResults: 20},
			QuerySpec{Terms: strings.Join(distinctiveTokens(tokens), " "), MaxResults: 20},
			QuerySpec{Terms: strings.Join(tokens, " "), MaxResults: 20},
		)
	}

	out := specs[:0]
	for _, s := range specs {
		if strings.TrimSpace(s.Terms) != "" {
			out = append(out, s)
		}
	}
	return out
}

// mainConcept truncates title at the first separator from
// conceptSeparators, or returns the whole title when none occurs.
func mainConcept(title string) string {
	for _, sep := range conceptSeparators {
		if idx := strings.Index(title, sep); idx >= 0 {
			return title[:idx]
		}
	}
	return title
}

// joinFirst joins up to n leading tokens with single spaces.
func joinFirst(tokens []string, n int) string {
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return strings.Join(tokens, " ")
}

// longestTokens returns the n longest tokens in descending length. Ties
// keep their original order.
func longestTokens(tokens []string, n int) []string {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// distinctiveTokens returns the tokens longer than distinctiveWordLen, in
// original order.
func distinctiveTokens(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) > distinctiveWordLen {
			out = append(out, tok)
		}
	}
	return out
}
