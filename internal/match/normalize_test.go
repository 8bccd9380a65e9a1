// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercase", "ADAM", "adam"},
		{"punctuation stripped", "Adam-Optimizer: A Study!", "adam optimizer study"},
		{"stop words removed", "The Convergence of Adam and Beyond", "convergence adam beyond"},
		{"whitespace collapsed", "  adam \t optimizer \n study ", "adam optimizer study"},
		{"greek beta", "β-VAE: Learning Basic Visual Concepts", "beta vae learning basic visual concepts"},
		{"greek alpha gamma", "α-divergence and γ-scheduling", "alpha divergence gamma scheduling"},
		{"digits kept", "Lion: 3x Faster Training", "lion 3x faster training"},
		{"only stop words", "of the and", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(nil)

	titles := []string{
		"",
		"Adam: A Method for Stochastic Optimization",
		"β-VAE and the Art of Disentanglement!",
		"On the Convergence of Adam and Beyond",
	}
	for _, title := range titles {
		once := n.Normalize(title)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}

func TestNormalizeCasePunctuationInsensitive(t *testing.T) {
	n := NewNormalizer(nil)

	a := n.Normalize("Adam-Optimizer: A Study!")
	b := n.Normalize("adam optimizer a study")
	if a != b {
		t.Errorf("Normalize mismatch: %q != %q", a, b)
	}
}

func TestNormalizeCustomStopWords(t *testing.T) {
	n := NewNormalizer([]string{"foo", "bar"})

	got := n.Normalize("Foo meets the Bar")
	// Default stop words do not apply when a custom set is supplied.
	want := "meets the"
	if got != want {
		t.Errorf("Normalize with custom stop words = %q, want %q", got, want)
	}
}

func TestTokens(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.Tokens("The ADOPT Optimizer, for Deep Learning")
	want := []string{"adopt", "optimizer", "deep", "learning"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %v, want %v", got, want)
	}
}

func TestTokenSet(t *testing.T) {
	n := NewNormalizer(nil)

	set := n.TokenSet("Adam and Adam again: Adam")
	if len(set) != 2 {
		t.Fatalf("TokenSet size = %d, want 2 (%v)", len(set), set)
	}
	if !set["adam"] || !set["again"] {
		t.Errorf("TokenSet missing expected tokens: %v", set)
	}
}
