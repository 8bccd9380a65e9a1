// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Composite score weights. Containment and shared vocabulary are weighted
// over raw edit distance because conference and arXiv title variants
// commonly add or drop a trailing clause while preserving a core phrase.
const (
	weightSequence    = 0.5
	weightContainment = 0.3
	weightWordOverlap = 0.2
)

// Scorer computes a composite similarity between two titles.
type Scorer struct {
	norm *Normalizer
}

// NewScorer returns a Scorer that normalizes titles with n.
func NewScorer(n *Normalizer) *Scorer {
	return &Scorer{norm: n}
}

// Score returns the composite similarity of two raw titles in [0,1]:
// 0.5 * sequence ratio + 0.3 * containment + 0.2 * word overlap.
// Score is symmetric in its arguments.
func (s *Scorer) Score(title1, title2 string) float64 {
	n1 := s.norm.Normalize(title1)
	n2 := s.norm.Normalize(title2)

	seq := sequenceRatio(n1, n2)

	contained := 0.0
	if strings.Contains(n1, n2) || strings.Contains(n2, n1) {
		contained = 1.0
	}

	return weightSequence*seq + weightContainment*contained + weightWordOverlap*wordOverlap(n1, n2)
}

// sequenceRatio is the character-level Ratcliff/Obershelp similarity:
// twice the number of matching characters over the total length.
func sequenceRatio(a, b string) float64 {
	m := difflib.NewMatcher(splitChars(a), splitChars(b))
	return m.Ratio()
}

// splitChars splits s into one-rune strings for the sequence matcher.
func splitChars(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "")
}

// wordOverlap is the size of the token-set intersection over the size of the
// smaller set, or 0 when either title has no tokens.
func wordOverlap(n1, n2 string) float64 {
	f1 := strings.Fields(n1)
	f2 := strings.Fields(n2)
	if len(f1) == 0 || len(f2) == 0 {
		return 0
	}

	set1 := make(map[string]bool, len(f1))
	for _, w := range f1 {
		set1[w] = true
	}
	set2 := make(map[string]bool, len(f2))
	for _, w := range f2 {
		set2[w] = true
	}

	common := 0
	for w := range set1 {
		if set2[w] {
			common++
		}
	}

	smaller := len(set1)
	if len(set2) < smaller {
		smaller = len(set2)
	}
	return float64(common) / float64(smaller)
}
