// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchReason labels why the verifier accepted or rejected a candidate.
type MatchReason string

const (
	// ReasonHighSimilarity accepts on composite score at or above threshold.
	ReasonHighSimilarity MatchReason = "high_similarity"

	// ReasonImportantWordOverlap accepts when enough long tokens of the
	// requested title also appear in the candidate.
	ReasonImportantWordOverlap MatchReason = "high_important_word_overlap"

	// ReasonTitleContainment accepts when one normalized title is a literal
	// substring of the other.
	ReasonTitleContainment MatchReason = "title_containment"

	// ReasonLowSimilarity is the default rejection.
	ReasonLowSimilarity MatchReason = "low_similarity"

	// ReasonBlacklistedPattern rejects candidates containing a known
	// false-positive phrase that the requested title lacks.
	ReasonBlacklistedPattern MatchReason = "blacklisted_pattern"

	// ReasonCandidateTooLong rejects candidates whose normalized title is
	// more than twice the length of the requested one.
	ReasonCandidateTooLong MatchReason = "candidate_too_long"
)

// MatchDecision is the verifier's verdict for one (requested, candidate)
// title pair.
type MatchDecision struct {
	// Accepted reports whether the candidate is considered the same paper.
	Accepted bool `json:"accepted" yaml:"accepted"`

	// Similarity is the composite score in [0,1]. Zero for blacklisted
	// candidates regardless of the raw score.
	Similarity float64 `json:"similarity" yaml:"similarity"`

	// Reason identifies the first decision rule that applied.
	Reason MatchReason `json:"reason" yaml:"reason"`
}
