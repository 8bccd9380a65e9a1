// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"math"
	"testing"
)

func newTestScorer() *Scorer {
	return NewScorer(NewNormalizer(nil))
}

func TestScoreIdentical(t *testing.T) {
	s := newTestScorer()

	titles := []string{
		"Adam: A Method for Stochastic Optimization",
		"On the Convergence of Adam and Beyond",
		"β-VAE",
	}
	for _, title := range titles {
		if got := s.Score(title, title); math.Abs(got-1.0) > 1e-9 {
			t.Errorf("Score(%q, same) = %f, want 1.0", title, got)
		}
	}
}

func TestScoreSymmetric(t *testing.T) {
	s := newTestScorer()

	pairs := [][2]string{
		{"Adam Optimizer", "On the Convergence of Adam"},
		{"Lion: Symbolic Discovery of Optimization Algorithms", "Symbolic Discovery"},
		{"", "anything at all"},
		{"completely unrelated words here", "quantum darcy flow analysis"},
	}
	for _, p := range pairs {
		ab := s.Score(p[0], p[1])
		ba := s.Score(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Score(%q, %q) = %f but reversed = %f", p[0], p[1], ab, ba)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	s := newTestScorer()

	pairs := [][2]string{
		{"Adam", "Adam"},
		{"Adam", "completely different topic entirely"},
		{"", ""},
		{"one", ""},
		{"ADOPT: Modified Adam Can Converge", "Adopt adam converge"},
	}
	for _, p := range pairs {
		got := s.Score(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Score(%q, %q) = %f, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestScoreContainmentFloor(t *testing.T) {
	s := newTestScorer()

	// Normalized "adam optimizer" is a substring of the longer title, so the
	// containment term alone contributes 0.3.
	got := s.Score("Adam Optimizer", "The Adam Optimizer Convergence Study Revisited Again")
	if got < 0.3 {
		t.Errorf("Score = %f, want >= 0.3 from containment term", got)
	}
}

func TestScoreDisjointTitles(t *testing.T) {
	s := newTestScorer()

	got := s.Score("zzzz qqqq", "wwww ffff")
	// No shared words, no containment; only a tiny sequence ratio from the
	// space characters.
	if got > 0.2 {
		t.Errorf("Score = %f, want near zero for disjoint titles", got)
	}
}

func TestWordOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"empty", "", "", 0},
		{"one empty", "adam", "", 0},
		{"disjoint", "adam optimizer", "darcy flow", 0},
		{"identical", "adam optimizer", "adam optimizer", 1},
		{"subset", "adam", "adam optimizer convergence", 1},
		{"partial", "adam optimizer study", "adam optimizer convergence", 2.0 / 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordOverlap(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("wordOverlap(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSequenceRatio(t *testing.T) {
	if got := sequenceRatio("abc", "abc"); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("sequenceRatio(abc, abc) = %f, want 1.0", got)
	}
	if got := sequenceRatio("", ""); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("sequenceRatio of two empty strings = %f, want 1.0", got)
	}
	if got := sequenceRatio("abcd", "wxyz"); got != 0 {
		t.Errorf("sequenceRatio(abcd, wxyz) = %f, want 0", got)
	}
	// Ratcliff/Obershelp: 2*M/T with M=3 ("abc"), T=7.
	if got := sequenceRatio("abcd", "abc"); math.Abs(got-6.0/7.0) > 1e-9 {
		t.Errorf("sequenceRatio(abcd, abc) = %f, want %f", got, 6.0/7.0)
	}
}
